package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"tokkun-notice/internal/models"
	"tokkun-notice/internal/sample"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeDemo(t *testing.T) string {
	t.Helper()

	data, err := sample.Bytes(sample.Roster{Rows: sample.DemoRows()})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "roster.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("SHEET_DECODER", "")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderText(t *testing.T) {
	out, err := execute(t, "render", writeDemo(t))
	require.NoError(t, err)

	assert.Contains(t, out, "✅ 3名の新宿校生徒のテンプレートを生成しました")
	assert.Contains(t, out, "--- 1人目: 山田 太郎 ---\n明日の特訓の詳細です。\n18:00‐19:30\n教科：数学\n担当：佐藤\n")
}

func TestRenderJSONWithStreamDecoder(t *testing.T) {
	out, err := execute(t, "render", "--json", "--decoder", "stream", writeDemo(t))
	require.NoError(t, err)

	var result models.ImportResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "roster.xlsx", result.Filename)
	assert.Equal(t, 3, result.Summary.Total)
	require.Len(t, result.Items, 3)
	assert.Contains(t, result.Items[0].HTML, `class="template-item"`)
}

func TestRenderReportsBannerMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	_, err := execute(t, "render", path)
	assert.EqualError(t, err, "Excelファイル（.xlsx または .xls）を選択してください")
}

func TestReportWritesWorkbook(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.xlsx")

	stdout, err := execute(t, "report", writeDemo(t), "-o", out, "--sent", "2", "--copied", "1,2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "(3 students, 2 copied, 1 sent)")

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("送信状況", "H3")
	require.NoError(t, err)
	assert.Equal(t, "送信済み", v)
	v, err = f.GetCellValue("送信状況", "H2")
	require.NoError(t, err)
	assert.Equal(t, "未送信", v)
}

func TestReportRejectsUnknownRow(t *testing.T) {
	_, err := execute(t, "report", writeDemo(t), "-o", filepath.Join(t.TempDir(), "r.xlsx"), "--sent", "9")
	assert.ErrorContains(t, err, "--sent 9")
}

func TestSamplesWritesWorkbooks(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "samples")

	out, err := execute(t, "samples", "--dir", dir)
	require.NoError(t, err)

	for _, file := range sample.Files() {
		path := filepath.Join(dir, file.Name)
		assert.FileExists(t, path)
		assert.Contains(t, out, "✓ "+path+" ("+file.Note+")")
	}

	out, err = execute(t, "render", filepath.Join(dir, "tokkun_list.xlsx"))
	require.NoError(t, err)
	assert.Contains(t, out, "✅ 3名の新宿校生徒のテンプレートを生成しました")
}

func TestSamplesRejectsArguments(t *testing.T) {
	_, err := execute(t, "samples", "extra")
	assert.Error(t, err)
}
