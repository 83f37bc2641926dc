package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rafaelcosta/card-bin-api/api"
	"github.com/rafaelcosta/card-bin-api/config"
	"github.com/rafaelcosta/card-bin-api/databases"
	"github.com/rafaelcosta/card-bin-api/models"
)

// CardInfo exported for testing purposes
type CardInfo struct {
	DB      databases.CardBinDatabase
	Metrics *api.Metrics
}

// CardInfoHandler resolves the BIN prefix of a card number to brand and type
// metadata. An unknown BIN never 404s: the brand is inferred from the
// leading digit and the type is reported as unknown.
func (c CardInfo) CardInfoHandler(w http.ResponseWriter, r *http.Request) {
	cardNumber := mux.Vars(r)["cardNumber"]

	// No validation here: a short or non-numeric card number simply
	// produces a BIN that misses the dataset.
	bin := cardNumber
	if len(bin) > models.BinLength {
		bin = bin[:models.BinLength]
	}

	zap.S().Debugf("bin: %v", bin)
	c.Metrics.CardInfoRequests.Inc()

	var resp models.CardInfoResponse
	if entry, ok := c.DB.Lookup(bin); ok {
		light, dark := models.BrandImages(entry.Brand)
		resp = models.CardInfoResponse{
			Bin:        entry.BIN,
			Bandeira:   entry.Brand,
			Tipo:       entry.Type,
			ImageLight: light,
			ImageDark:  dark,
		}
	} else {
		c.Metrics.LookupMisses.Inc()
		brand := models.BrandFromLeadingDigit(bin)
		light, dark := models.BrandImages(brand.String())
		resp = models.CardInfoResponse{
			Bin:        bin,
			Bandeira:   brand.String(),
			Tipo:       models.TypeUnknown,
			ImageLight: light,
			ImageDark:  dark,
		}
	}

	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
