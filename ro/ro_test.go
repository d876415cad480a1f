package ro

import "testing"

func TestDeterminism(t *testing.T) {
	seed := []byte("deterministic seed")
	a := New(SHA3RO{}, seed)
	b := New(SHA3RO{}, seed)

	bufA := make([]byte, 128)
	bufB := make([]byte, 128)
	if _, err := a.Read(bufA); err != nil {
		t.Fatalf("read a: %v", err)
	}
	if _, err := b.Read(bufB); err != nil {
		t.Fatalf("read b: %v", err)
	}
	for i := range bufA {
		if bufA[i] != bufB[i] {
			t.Fatalf("stream mismatch at byte %d: %x != %x", i, bufA[i], bufB[i])
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	seed := []byte("split seed")
	a := New(SHA3RO{}, seed)
	b := New(SHA3RO{}, seed)

	childA := a.Split()
	childB := b.Split()

	bufA := make([]byte, 64)
	bufB := make([]byte, 64)
	childA.Read(bufA)
	childB.Read(bufB)
	for i := range bufA {
		if bufA[i] != bufB[i] {
			t.Fatalf("child stream mismatch at byte %d", i)
		}
	}
}

func TestSplitSiblingsIndependent(t *testing.T) {
	a := New(SHA3RO{}, []byte("seed"))
	c1 := a.Split()
	c2 := a.Split()

	buf1 := make([]byte, 32)
	buf2 := make([]byte, 32)
	c1.Read(buf1)
	c2.Read(buf2)

	same := true
	for i := range buf1 {
		if buf1[i] != buf2[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("sibling splits produced identical streams")
	}
}

func TestSeqQueryMatchesConcatenation(t *testing.T) {
	a := SHA3RO{}.SeqQuery([]byte("foo"), []byte("bar"))
	b := SHA3RO{}.Query([]byte("foobar"))
	if a != b {
		t.Fatalf("seq_query(foo,bar) != query(foobar)")
	}
}
