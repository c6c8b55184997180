package services

import (
	"testing"

	"gated-community-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotService(t *testing.T) {
	db := newTestDB(t)
	_, street, plot, resident, _ := seedHierarchy(t, db)
	svc := NewPlotService(db, newTestConfig())

	t.Run("按街道查询地块", func(t *testing.T) {
		plots, total, err := svc.GetPlotsByStreetID(street.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, plots, 1)
		assert.Equal(t, plot.PlotNumber, plots[0].PlotNumber)
	})

	t.Run("创建地块默认为别墅类型", func(t *testing.T) {
		p := models.Plot{
			PlotNumber: "B-201",
			StreetID:   street.ID,
		}
		require.NoError(t, svc.CreatePlot(&p))
		assert.Equal(t, models.PlotTypeVilla, p.PlotType)
		assert.Equal(t, "active", p.Status)
	})

	t.Run("街道不存在时拒绝创建", func(t *testing.T) {
		p := models.Plot{
			PlotNumber: "C-301",
			StreetID:   99999,
		}
		assert.Error(t, svc.CreatePlot(&p))
	})

	t.Run("同一街道下门牌号唯一", func(t *testing.T) {
		dup := models.Plot{
			PlotNumber: plot.PlotNumber,
			StreetID:   street.ID,
		}
		assert.Error(t, svc.CreatePlot(&dup))
	})

	t.Run("更新门牌号检查唯一性", func(t *testing.T) {
		_, err := svc.UpdatePlot(plot.ID, map[string]interface{}{"plot_number": "B-201"})
		assert.Error(t, err)

		updated, err := svc.UpdatePlot(plot.ID, map[string]interface{}{"plot_type": models.PlotTypeApartment})
		require.NoError(t, err)
		assert.Equal(t, models.PlotTypeApartment, updated.PlotType)
	})

	t.Run("有住户的地块不能删除", func(t *testing.T) {
		assert.Error(t, svc.DeletePlot(plot.ID))
	})

	t.Run("获取地块下的住户", func(t *testing.T) {
		residents, err := svc.GetPlotResidents(plot.ID)
		require.NoError(t, err)
		require.Len(t, residents, 1)
		assert.Equal(t, resident.Name, residents[0].Name)
	})

	t.Run("地块详情带所属街道", func(t *testing.T) {
		got, err := svc.GetPlotByID(plot.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Street)
		assert.Equal(t, street.StreetName, got.Street.StreetName)
	})
}
