package sample

import (
	"context"
	"testing"

	"tokkun-notice/internal/models"
	"tokkun-notice/internal/service"
	"tokkun-notice/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoRosterImports(t *testing.T) {
	data, err := Bytes(Roster{Rows: DemoRows()})
	require.NoError(t, err)

	for _, name := range []string{"excelize", "stream"} {
		t.Run(name, func(t *testing.T) {
			decoder, err := service.NewDecoder(name)
			require.NoError(t, err)

			svc := service.NewImportService(decoder, utils.ComponentLogger("test"))
			batch, err := svc.Process(context.Background(), "demo.xlsx", data)
			require.NoError(t, err)

			assert.Equal(t, 5, batch.TotalRows)
			require.Equal(t, 3, batch.Len())
			assert.Equal(t, "山田 太郎", batch.Items[0].DisplayName)
			assert.Equal(t, "高橋 一郎", batch.Items[1].DisplayName)
			assert.Equal(t, `O'Brien "Ken" <帰国生>`, batch.Items[2].DisplayName)
			assert.Contains(t, batch.Items[2].Text, "教科：英語 & 小論文")
		})
	}
}

func TestBuildUsesSheetName(t *testing.T) {
	f, err := Build(Roster{Sheet: "Sheet1"})
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())

	g, err := Build(Roster{})
	require.NoError(t, err)
	defer g.Close()

	assert.Equal(t, []string{models.SheetName}, g.GetSheetList())
	v, err := g.GetCellValue(models.SheetName, "F4")
	require.NoError(t, err)
	assert.Equal(t, "生徒氏名", v)
}
