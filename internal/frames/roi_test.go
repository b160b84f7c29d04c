package frames

import (
	"context"
	"errors"
	"io"
	"testing"
)

func TestComputeRegionBottomBand(t *testing.T) {
	region, err := ComputeRegion("bottom_30", nil, 1920, 1080)
	if err != nil {
		t.Fatalf("ComputeRegion returned error: %v", err)
	}
	want := Rect{X: 0, Y: 756, W: 1920, H: 324}
	if region != want {
		t.Fatalf("region = %+v, want %+v", region, want)
	}
}

func TestComputeRegionAutoMatchesBottomBand(t *testing.T) {
	auto, err := ComputeRegion("auto", nil, 1280, 720)
	if err != nil {
		t.Fatalf("ComputeRegion(auto) returned error: %v", err)
	}
	bottom, err := ComputeRegion("bottom_30", nil, 1280, 720)
	if err != nil {
		t.Fatalf("ComputeRegion(bottom_30) returned error: %v", err)
	}
	if auto != bottom {
		t.Fatalf("auto region %+v differs from bottom_30 %+v", auto, bottom)
	}
}

func TestComputeRegionManual(t *testing.T) {
	tests := []struct {
		name    string
		rect    []int
		want    Rect
		wantErr bool
	}{
		{name: "inside frame", rect: []int{100, 800, 600, 200}, want: Rect{X: 100, Y: 800, W: 600, H: 200}},
		{name: "clamped to frame", rect: []int{1800, 1000, 400, 400}, want: Rect{X: 1800, Y: 1000, W: 120, H: 80}},
		{name: "fully outside", rect: []int{2000, 0, 100, 100}, wantErr: true},
		{name: "wrong arity", rect: []int{1, 2, 3}, wantErr: true},
		{name: "negative origin", rect: []int{-1, 0, 10, 10}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, err := ComputeRegion("manual", tt.rect, 1920, 1080)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for rect %v", tt.rect)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeRegion returned error: %v", err)
			}
			if region != tt.want {
				t.Fatalf("region = %+v, want %+v", region, tt.want)
			}
		})
	}
}

func TestComputeRegionUnknownMode(t *testing.T) {
	if _, err := ComputeRegion("sideways", nil, 1920, 1080); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestSliceSourceReplaysInOrder(t *testing.T) {
	source := NewSliceSource(
		Frame{TimestampMS: 0, Image: []byte("a")},
		Frame{TimestampMS: 333, Image: []byte("b")},
	)
	ctx := context.Background()

	first, err := source.Next(ctx)
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	if first.TimestampMS != 0 || string(first.Image) != "a" {
		t.Fatalf("unexpected first frame %+v", first)
	}
	second, err := source.Next(ctx)
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	if second.TimestampMS != 333 {
		t.Fatalf("second timestamp = %d, want 333", second.TimestampMS)
	}
	if _, err := source.Next(ctx); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF after exhaustion, got %v", err)
	}
}

func TestSliceSourceHonorsContext(t *testing.T) {
	source := NewSliceSource(Frame{TimestampMS: 0})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := source.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
