package cell

import (
	"testing"

	"github.com/cloefgms/FOXP2Project/pkg/geometry"
)

// pointRegion builds a single-pixel region whose centroid is exactly (x, y).
func pointRegion(x, y int) Region {
	return Region{Area: 1, SumX: int64(x), SumY: int64(y)}
}

func roiSquare() geometry.Polygon {
	return geometry.Polygon{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 50}, {X: 10, Y: 50}}
}

func TestClassifyOutcomes(t *testing.T) {
	regions := []Region{
		pointRegion(30, 30),   // inside
		pointRegion(10, 10),   // exactly on a vertex
		pointRegion(100, 100), // outside
		pointRegion(20, 40),   // inside
	}
	dets, err := Classify(regions, roiSquare())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if len(dets) != 4 {
		t.Fatalf("got %d detections, want 4 (rejected ones must be kept)", len(dets))
	}

	wantClass := []geometry.Classification{geometry.Inside, geometry.OnBoundary, geometry.Outside, geometry.Inside}
	wantSeq := []int{1, 0, 0, 2}
	for i, d := range dets {
		if d.Class != wantClass[i] {
			t.Errorf("detection %d class = %v, want %v", i, d.Class, wantClass[i])
		}
		if d.Seq != wantSeq[i] {
			t.Errorf("detection %d seq = %d, want %d", i, d.Seq, wantSeq[i])
		}
	}
}

func TestClassifySequenceContiguous(t *testing.T) {
	var regions []Region
	for i := 0; i < 10; i++ {
		if i%3 == 0 {
			regions = append(regions, pointRegion(200, 200)) // outside
		} else {
			regions = append(regions, pointRegion(20+i, 20+i))
		}
	}
	dets, err := Classify(regions, roiSquare())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	acc := Accepted(dets)
	for i, d := range acc {
		if d.Seq != i+1 {
			t.Errorf("accepted[%d].Seq = %d, want %d (must be contiguous 1..K)", i, d.Seq, i+1)
		}
	}
	if len(acc) == 0 {
		t.Fatal("expected accepted detections")
	}
}

func TestClassifyTruncatesCentroid(t *testing.T) {
	// Sum 9 over area 2 is 4.5; the moment ratio truncates to 4.
	r := Region{Area: 2, SumX: 9, SumY: 9}
	dets, err := Classify([]Region{r}, roiSquare())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if dets[0].X != 4 || dets[0].Y != 4 {
		t.Errorf("centroid = (%d, %d), want (4, 4)", dets[0].X, dets[0].Y)
	}
}

func TestClassifyZeroAreaIsError(t *testing.T) {
	_, err := Classify([]Region{{Area: 0}}, roiSquare())
	if err == nil {
		t.Fatal("zero-area region must fail loudly, got nil error")
	}
}

func TestAcceptedKeepsOrder(t *testing.T) {
	dets := []Detection{
		{Seq: 1, X: 20, Y: 20, Class: geometry.Inside},
		{Seq: 0, X: 5, Y: 5, Class: geometry.Outside},
		{Seq: 2, X: 30, Y: 30, Class: geometry.Inside},
	}
	acc := Accepted(dets)
	if len(acc) != 2 || acc[0].Seq != 1 || acc[1].Seq != 2 {
		t.Errorf("Accepted returned %+v, want seq order 1,2", acc)
	}
}
