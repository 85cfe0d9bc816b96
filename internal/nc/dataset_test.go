package nc

import (
	"errors"
	"math"
	"testing"
)

func TestYearFromPath(t *testing.T) {
	tests := []struct {
		path string
		year int
	}{
		{"air.2018.nc", 2018},
		{"/data/archive/air.1997.nc", 1997},
		{"reanalysis-2020-v2.nc", 2020},
		{"/archive2019/air.2018.nc", 2018}, // only the basename counts
	}
	for _, tc := range tests {
		got, err := YearFromPath(tc.path)
		if err != nil {
			t.Errorf("YearFromPath(%q): %v", tc.path, err)
			continue
		}
		if got != tc.year {
			t.Errorf("YearFromPath(%q) = %d, want %d", tc.path, got, tc.year)
		}
	}
}

func TestYearFromPathMissing(t *testing.T) {
	for _, path := range []string{"air.nc", "/data/2018/air.nc", "air.v2.nc"} {
		if _, err := YearFromPath(path); !errors.Is(err, ErrNoYear) {
			t.Errorf("YearFromPath(%q) err = %v, want ErrNoYear", path, err)
		}
	}
}

func TestUnpackInt16AppliesScaleOffset(t *testing.T) {
	payload := [][][][]int16{{{{100, 200}}}}
	slice, err := unpack(payload, 0.01, 250)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if got := slice[0][0][0]; math.Abs(got-251) > 1e-12 {
		t.Errorf("unpacked value = %v, want 251", got)
	}
	if got := slice[0][0][1]; math.Abs(got-252) > 1e-12 {
		t.Errorf("unpacked value = %v, want 252", got)
	}
}

func TestUnpackFloatPayloads(t *testing.T) {
	f32 := [][][][]float32{{{{280.5}}}}
	slice, err := unpack(f32, 1, 0)
	if err != nil {
		t.Fatalf("unpack(float32): %v", err)
	}
	if got := slice[0][0][0]; math.Abs(got-280.5) > 1e-6 {
		t.Errorf("float32 value = %v, want 280.5", got)
	}

	f64 := [][][][]float64{{{{281.25}}}}
	slice, err = unpack(f64, 1, 0)
	if err != nil {
		t.Fatalf("unpack(float64): %v", err)
	}
	if got := slice[0][0][0]; got != 281.25 {
		t.Errorf("float64 value = %v, want 281.25", got)
	}
}

func TestUnpackRejectsUnknownPayload(t *testing.T) {
	if _, err := unpack([]string{"nope"}, 1, 0); err == nil {
		t.Error("unpack accepted an unsupported payload type")
	}
}

func TestAttrFloat(t *testing.T) {
	tests := []struct {
		in   any
		def  float64
		want float64
	}{
		{float64(0.01), 1, 0.01},
		{float32(2.5), 1, 2.5},
		{[]float64{447.65}, 0, 447.65},
		{[]float32{0.5}, 0, 0.5},
		{"bogus", 1, 1},
		{[]float64{}, 3, 3},
	}
	for _, tc := range tests {
		if got := attrFloat(tc.in, tc.def); math.Abs(got-tc.want) > 1e-6 {
			t.Errorf("attrFloat(%v, %v) = %v, want %v", tc.in, tc.def, got, tc.want)
		}
	}
}
