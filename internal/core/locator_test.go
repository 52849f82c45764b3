package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var twoMethodClass = []string{
	".class public Lcom/app/Foo;",
	".super Ljava/lang/Object;",
	"",
	".method public foo()V",
	"    .locals 0",
	"    return-void",
	".end method",
	"",
	".method public bar()V",
	"    .locals 0",
	"    return-void",
	".end method",
}

func TestFindMethodRange(t *testing.T) {
	tests := []struct {
		name     string
		sig      string
		expected MethodRange
	}{
		{"first method", ".method public foo()V", MethodRange{Start: 3, End: 6}},
		{"second method", ".method public bar()V", MethodRange{Start: 8, End: 11}},
		{"extra whitespace in signature", ".method   public\tbar()V", MethodRange{Start: 8, End: 11}},
		{"missing method", ".method public baz()V", MethodRange{Start: -1, End: -1}},
		{"regex metacharacters are literal", ".method public foo(.)V", MethodRange{Start: -1, End: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindMethodRange(twoMethodClass, tt.sig))
		})
	}
}

func TestFindMethodRange_ToleratesIndentationAndSpacingInTarget(t *testing.T) {
	lines := []string{
		"  .method  public   static  run()V",
		"  return-void",
		"  .end method  ",
	}

	r := FindMethodRange(lines, ".method public static run()V")

	assert.Equal(t, MethodRange{Start: 0, End: 2}, r)
	assert.True(t, r.Closed())
}

func TestFindMethodRange_OpenEnded(t *testing.T) {
	lines := []string{".method public foo()V", "    return-void"}

	r := FindMethodRange(lines, ".method public foo()V")

	assert.True(t, r.Found())
	assert.False(t, r.Closed())
	assert.Equal(t, -1, r.End)
}

func TestFindMethodRange_FirstMatchWins(t *testing.T) {
	lines := []string{
		".method public foo()V", ".end method",
		".method public foo()V", ".end method",
	}

	assert.Equal(t, MethodRange{Start: 0, End: 1}, FindMethodRange(lines, ".method public foo()V"))
}

func TestFindDirectiveLine(t *testing.T) {
	lines := []string{
		".class public LFoo;",
		"    iget v0, p0, LFoo;->myField:I",
		".field private   myField:I",
		".field private other:I",
	}

	assert.Equal(t, 2, FindDirectiveLine(lines, ".field", "myField:I"))
	assert.Equal(t, 2, FindDirectiveLine(lines, ".field", "private myField:I"))
	assert.Equal(t, -1, FindDirectiveLine(lines, ".field", "missing:I"))
	assert.Equal(t, -1, FindDirectiveLine(lines, ".method", "myField:I"))
}

func TestFindFingerprint_ToleratesIgnorableLines(t *testing.T) {
	sut := Normalizer{}
	lines := []string{
		"    const/4 v0, 0x0",
		"",
		"    # decompiler comment",
		"    if-eqz v0, :cond_0",
		"    return-void",
	}
	fingerprint := sut.Fingerprint([]string{"const/4 v0, 0x0", "if-eqz   v0, :cond_0", "return-void"})

	assert.Equal(t, 0, sut.FindFingerprint(lines, fingerprint, 0, len(lines)))
}

func TestFindFingerprint_NonIgnorableInterruptionBreaksMatch(t *testing.T) {
	sut := Normalizer{}
	lines := []string{
		"    const/4 v0, 0x0",
		"    nop",
		"    if-eqz v0, :cond_0",
	}
	fingerprint := sut.Fingerprint([]string{"const/4 v0, 0x0", "if-eqz v0, :cond_0"})

	assert.Equal(t, -1, sut.FindFingerprint(lines, fingerprint, 0, len(lines)))
}

func TestFindFingerprint_FirstMatchAndRange(t *testing.T) {
	sut := Normalizer{}
	lines := []string{"a", "b", "x", "a", "b"}
	fingerprint := []string{"a", "b"}

	assert.Equal(t, 0, sut.FindFingerprint(lines, fingerprint, 0, len(lines)))
	assert.Equal(t, 3, sut.FindFingerprint(lines, fingerprint, 1, len(lines)))
	assert.Equal(t, -1, sut.FindFingerprint(lines, fingerprint, 1, 4))
	assert.Equal(t, -1, sut.FindFingerprint(lines, nil, 0, len(lines)))
}

func TestFindFingerprint_MatchStartsOnMeaningfulLine(t *testing.T) {
	sut := Normalizer{}
	lines := []string{"", "# c", "a", "b"}

	assert.Equal(t, 2, sut.FindFingerprint(lines, []string{"a", "b"}, 0, len(lines)))
}

func TestFindFingerprint_SkipsDebugDirectivesWhenConfigured(t *testing.T) {
	lines := []string{"    const/4 v0, 0x1", "    .line 27", "    return v0"}
	fingerprint := []string{"const/4 v0, 0x1", "return v0"}

	assert.Equal(t, -1, Normalizer{}.FindFingerprint(lines, fingerprint, 0, len(lines)))
	assert.Equal(t, 0, Normalizer{SkipDebugDirectives: true}.FindFingerprint(lines, fingerprint, 0, len(lines)))
}
