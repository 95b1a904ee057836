package s3

import (
	"bytes"
	"context"
	"io"
	"testing"

	"beamcore/internal/blob/core"
)

func TestMockS3_PutGetHeadListDelete(t *testing.T) {
	ctx := context.Background()
	bs := NewMockForTests()
	if bs.Driver() != core.DriverS3 {
		t.Fatalf("driver mismatch: %s", bs.Driver())
	}
	info, err := bs.Put(ctx, "scan1/frame_0001.cbf", bytes.NewReader([]byte("payload")), core.PutOptions{ContentType: "application/octet-stream"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "scan1/frame_0001.cbf" {
		t.Fatalf("unexpected info %+v", info)
	}
	// create-only semantics
	if _, err := bs.Put(ctx, "scan1/frame_0001.cbf", bytes.NewReader([]byte("x")), core.PutOptions{}); err == nil {
		t.Fatalf("expected duplicate failure")
	}
	h, err := bs.Head(ctx, "scan1/frame_0001.cbf")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if h.Size != int64(len("payload")) {
		t.Fatalf("unexpected head size %d", h.Size)
	}
	_, rc, err := bs.Get(ctx, "scan1/frame_0001.cbf")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(b) != "payload" {
		t.Fatalf("unexpected body %q", b)
	}
	list, err := bs.List(ctx, "scan1/")
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %+v", err, list)
	}
	ok, err := bs.Delete(ctx, "scan1/frame_0001.cbf")
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if _, err := bs.Head(ctx, "scan1/frame_0001.cbf"); err == nil {
		t.Fatalf("expected head miss after delete")
	}
}

func TestDecodeChunked(t *testing.T) {
	body, ok := decodeChunked([]byte("5\r\nhello\r\n0\r\n\r\n"))
	if !ok || string(body) != "hello" {
		t.Fatalf("decode failed: %v %q", ok, body)
	}
	if _, ok := decodeChunked([]byte("plain body")); ok {
		t.Fatalf("expected plain body to be rejected")
	}
}
