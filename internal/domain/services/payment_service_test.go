package services

import (
	"testing"
	"time"

	"gated-community-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentService(t *testing.T) {
	db := newTestDB(t)
	_, _, plot, resident, _ := seedHierarchy(t, db)
	svc := NewPaymentService(db, newTestConfig())

	t.Run("创建缴费单地块随住户确定", func(t *testing.T) {
		p := models.Payment{
			ResidentID:  resident.ID,
			PaymentType: models.PaymentTypeMaintenance,
			Amount:      320.50,
			DueDate:     time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, svc.CreatePayment(&p))
		assert.Equal(t, plot.ID, p.PlotID)
		assert.Equal(t, models.PaymentStatusPending, p.Status)
	})

	t.Run("住户不存在时拒绝创建", func(t *testing.T) {
		p := models.Payment{
			ResidentID:  99999,
			PaymentType: models.PaymentTypeWater,
			Amount:      50,
			DueDate:     time.Now(),
		}
		assert.Error(t, svc.CreatePayment(&p))
	})

	t.Run("标记已缴生成凭证号", func(t *testing.T) {
		p := models.Payment{
			ResidentID:  resident.ID,
			PaymentType: models.PaymentTypeElectricity,
			Amount:      88.8,
			DueDate:     time.Now(),
		}
		require.NoError(t, svc.CreatePayment(&p))

		paid, err := svc.MarkPaymentPaid(p.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, paid.Status)
		require.NotNil(t, paid.PaidDate)
		assert.NotEmpty(t, paid.ReceiptNumber)

		// 已缴清的记录不能重复标记
		_, err = svc.MarkPaymentPaid(p.ID)
		assert.Error(t, err)
	})

	t.Run("按状态过滤", func(t *testing.T) {
		payments, total, err := svc.GetAllPayments(1, 10, models.PaymentStatusPending)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		for _, p := range payments {
			assert.Equal(t, models.PaymentStatusPending, p.Status)
		}
	})

	t.Run("按住户查询", func(t *testing.T) {
		payments, total, err := svc.GetPaymentsByResidentID(resident.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, payments, 2)
	})

	t.Run("缴费统计", func(t *testing.T) {
		stats, err := svc.GetPaymentStatistics()
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats["total"])
		assert.Equal(t, int64(1), stats["paid"])
		assert.Equal(t, int64(1), stats["pending"])
	})
}
