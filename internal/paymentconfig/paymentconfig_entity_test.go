package paymentconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newConfig() *PaymentConfiguration {
	cfg := &PaymentConfiguration{
		GradeAmounts: map[string]int64{
			"3ème année primaire": 1200,
			"8ème année":          1500,
			"unpriced":            0,
		},
	}
	cfg.Uniform = UniformConfig{Enabled: true, Price: 80}
	cfg.Transportation.Enabled = true
	cfg.Transportation.Tariffs.Close = TransportTariff{Enabled: true, MonthlyPrice: 30}
	cfg.Transportation.Tariffs.Far = TransportTariff{Enabled: false, MonthlyPrice: 45}
	cfg.InscriptionFee.Enabled = true
	cfg.InscriptionFee.Prices.MaternelleAndPrimaire = 50
	cfg.InscriptionFee.Prices.CollegeAndLycee = 70
	return cfg
}

func TestTuitionForGrade(t *testing.T) {
	cfg := newConfig()

	amount, ok := cfg.TuitionForGrade("3ème année primaire")
	assert.True(t, ok)
	assert.Equal(t, int64(1200), amount)

	_, ok = cfg.TuitionForGrade("6ème année primaire")
	assert.False(t, ok)

	// A zero amount counts as unpriced.
	_, ok = cfg.TuitionForGrade("unpriced")
	assert.False(t, ok)
}

func TestInscriptionFeeForCategory(t *testing.T) {
	cfg := newConfig()

	assert.Equal(t, int64(50), cfg.InscriptionFeeForCategory(CategoryMaternelle))
	assert.Equal(t, int64(50), cfg.InscriptionFeeForCategory(CategoryPrimaire))
	assert.Equal(t, int64(70), cfg.InscriptionFeeForCategory(CategorySecondaire))
	assert.Zero(t, cfg.InscriptionFeeForCategory("unknown"))

	cfg.InscriptionFee.Enabled = false
	assert.Zero(t, cfg.InscriptionFeeForCategory(CategoryPrimaire))
}

func TestTransportTariffFor(t *testing.T) {
	cfg := newConfig()

	tariff, ok := cfg.TransportTariffFor("close")
	assert.True(t, ok)
	assert.Equal(t, int64(30), tariff.MonthlyPrice)

	// The far zone exists but is disabled.
	_, ok = cfg.TransportTariffFor("far")
	assert.False(t, ok)

	_, ok = cfg.TransportTariffFor("orbital")
	assert.False(t, ok)

	cfg.Transportation.Enabled = false
	_, ok = cfg.TransportTariffFor("close")
	assert.False(t, ok)
}
