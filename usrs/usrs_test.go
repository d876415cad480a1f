package usrs

import (
	"bytes"
	"testing"

	"github.com/giuliop/usrs/ro"
)

func newRng(seed string) *ro.Output {
	return ro.New(ro.SHA3RO{}, []byte(seed))
}

func TestEmptySRSStructure(t *testing.T) {
	for _, d := range []int{2, 3, 4, 8} {
		s := New(d)
		if !s.VerifyStructure(newRng("empty-structure")) {
			t.Fatalf("New(%d).VerifyStructure() = false, want true", d)
		}
	}
}

func TestNewPanicsOnSmallDimension(t *testing.T) {
	for _, d := range []int{-1, 0, 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("New(%d) did not panic", d)
				}
			}()
			New(d)
		}()
	}
}

func TestPermutationClosure(t *testing.T) {
	s := New(4)
	rng := newRng("permutation-closure")
	x, alpha := SampleTrapdoor(rng)

	permuted := s.Permute(x, alpha)
	if !permuted.VerifyStructure(newRng("permutation-closure-verify")) {
		t.Fatalf("permuted SRS failed VerifyStructure")
	}
	if !permuted.GAX[permuted.D].Equal(&g1Gen) {
		t.Fatalf("g_ax center slot was not reset to the sentinel")
	}
}

func TestPerturbedSRSRejected(t *testing.T) {
	s := New(4)
	rng := newRng("perturb-setup")
	x, alpha := SampleTrapdoor(rng)
	permuted := s.Permute(x, alpha)

	d := permuted.D
	permuted.GX[d+1] = permuted.GX[d+2]

	if permuted.VerifyStructure(newRng("perturb-verify")) {
		t.Fatalf("VerifyStructure accepted a perturbed SRS")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := New(4)
	rng := newRng("export-setup")
	x, alpha := SampleTrapdoor(rng)
	s = s.Permute(x, alpha)

	var buf bytes.Buffer
	if err := s.Export(&buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	got, err := Import(&buf)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !got.equal(s) {
		t.Fatalf("round-tripped SRS does not match original")
	}
}

func TestExportSizeMatchesSpec(t *testing.T) {
	s := New(4)
	var buf bytes.Buffer
	if err := s.Export(&buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	want := 8 + 9*(2*48+2*96)
	if buf.Len() != want {
		t.Fatalf("export size = %d, want %d", buf.Len(), want)
	}
}

func TestImportRejectsSmallDimension(t *testing.T) {
	var dBuf [8]byte
	buf := bytes.NewBuffer(dBuf[:])
	if _, err := Import(buf); err == nil {
		t.Fatalf("Import accepted dimension 0")
	}
}
