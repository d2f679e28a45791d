package basket_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import intentional for Gomega matcher DSL
	"github.com/rs/zerolog"
	"github.com/toejough/basketimp/basket"
)

func TestLoadConfigFrom_Defaults(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	cfg, err := basket.LoadConfigFrom(map[string]string{})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Surcharge).To(BeDecimal("2.00"))
	g.Expect(cfg.Level()).To(Equal(zerolog.InfoLevel))
}

func TestLoadConfigFrom_Overrides(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	cfg, err := basket.LoadConfigFrom(map[string]string{
		"BASKET_SURCHARGE": "0.75",
		"LOG_LEVEL":        "debug",
	})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Surcharge).To(BeDecimal("0.75"))
	g.Expect(cfg.Level()).To(Equal(zerolog.DebugLevel))
}

func TestLoadConfigFrom_Rejects(t *testing.T) {
	t.Parallel()

	for name, surcharge := range map[string]string{
		"negative": "-1",
		"garbage":  "two euros",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			_, err := basket.LoadConfigFrom(map[string]string{"BASKET_SURCHARGE": surcharge})

			g.Expect(err).To(HaveOccurred())
		})
	}
}

func TestConfig_Level_FallsBackToInfo(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(basket.Config{LogLevel: "loud"}.Level()).To(Equal(zerolog.InfoLevel))
	g.Expect(basket.Config{}.Level()).To(Equal(zerolog.InfoLevel))
}
