package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"ats-match-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOCR 测试用的OCR识别器
type fakeOCR struct {
	text  string
	err   error
	calls int
}

func (f *fakeOCR) RecognizeFile(ctx context.Context, path string) (string, error) {
	f.calls++
	return f.text, f.err
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestExtractEmptyPathReturnsNothing(t *testing.T) {
	e := New()
	text, err := e.Extract(context.Background(), types.ResumeDocument{})
	assert.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestExtractMissingFileDegradesWithError(t *testing.T) {
	e := New()
	doc := types.ResumeDocument{Path: "/nonexistent/resume.txt", Kind: types.KindPlainText}
	text, err := e.Extract(context.Background(), doc)
	assert.Error(t, err)
	assert.Equal(t, "", text)
}

func TestExtractResolvesKindWhenUnset(t *testing.T) {
	path := writeTempFile(t, "resume.txt", []byte("plain resume content"))
	e := New()
	text, err := e.Extract(context.Background(), types.ResumeDocument{Path: path})
	assert.NoError(t, err)
	assert.Equal(t, "plain resume content", text)
}

func TestPlainTextReadDropsInvalidBytes(t *testing.T) {
	// 夹杂非法UTF-8字节的文本文件应宽松读取，坏字节直接丢弃
	data := append([]byte("skills: "), 0xff, 0xfe)
	data = append(data, []byte("Python and SQL")...)
	path := writeTempFile(t, "resume.txt", data)

	e := New()
	text, err := e.Extract(context.Background(), types.ResumeDocument{Path: path, Kind: types.KindPlainText})
	assert.NoError(t, err)
	assert.Equal(t, "skills: Python and SQL", text)
}

func TestUnknownExtensionFallsBackToPlainText(t *testing.T) {
	path := writeTempFile(t, "resume.md", []byte("# markdown resume"))
	e := New()
	text, err := e.Extract(context.Background(), types.ResumeDocument{Path: path})
	assert.NoError(t, err)
	assert.Equal(t, "# markdown resume", text)
}

func TestCorruptPDFWithoutOCRDegrades(t *testing.T) {
	path := writeTempFile(t, "resume.pdf", []byte("this is not a pdf at all"))
	e := New()
	text, err := e.Extract(context.Background(), types.ResumeDocument{Path: path, Kind: types.KindPDF})
	assert.Error(t, err)
	assert.Equal(t, "", text)
}

func TestCorruptPDFFallsBackToOCR(t *testing.T) {
	// 文本层读不出来时应走OCR回退，OCR结果直接作为提取文本
	path := writeTempFile(t, "scan.pdf", []byte("this is not a pdf at all"))
	ocr := &fakeOCR{text: "ocr recognized resume text"}
	e := New(WithOCR(ocr))

	text, err := e.Extract(context.Background(), types.ResumeDocument{Path: path, Kind: types.KindPDF})
	assert.NoError(t, err)
	assert.Equal(t, "ocr recognized resume text", text)
	assert.Equal(t, 1, ocr.calls)
}

func TestOCRFailureDegradesToEmptyText(t *testing.T) {
	path := writeTempFile(t, "scan.pdf", []byte("this is not a pdf at all"))
	ocr := &fakeOCR{err: fmt.Errorf("tika unreachable")}
	e := New(WithOCR(ocr))

	text, err := e.Extract(context.Background(), types.ResumeDocument{Path: path, Kind: types.KindPDF})
	assert.Error(t, err)
	assert.Equal(t, "", text)
}

func TestCorruptDocxDegrades(t *testing.T) {
	path := writeTempFile(t, "resume.docx", []byte("not a zip archive"))
	e := New()
	text, err := e.Extract(context.Background(), types.ResumeDocument{Path: path, Kind: types.KindDocBinary})
	assert.Error(t, err)
	assert.Equal(t, "", text)
}

func TestDocVisibleTextConcatenatesRunsWithinParagraph(t *testing.T) {
	// 被拼写检查边界拆成两个run的单词必须无缝还原，
	// 否则整词匹配会错误命中"Java"并错失"JavaScript"
	content := `<w:p><w:r><w:t>Java</w:t></w:r><w:proofErr/><w:r><w:t xml:space="preserve">Script</w:t></w:r></w:p>`
	assert.Equal(t, "JavaScript ", docVisibleText(content))
}

func TestDocVisibleTextSeparatesParagraphs(t *testing.T) {
	content := `<w:p><w:r><w:t>Senior Engineer</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>C&amp;I experience</w:t></w:r></w:p>`
	assert.Equal(t, "Senior Engineer C&I experience ", docVisibleText(content))
}

func TestDocVisibleTextEmptyDocument(t *testing.T) {
	assert.Equal(t, "", docVisibleText("<w:document></w:document>"))
}
