package quote

import (
	"sort"

	"quickmechanic/models"
)

const catalogueCurrency = "brl"

// Base prices are estimates before any mechanic quote; parts are never included.
var catalogue = map[string]models.ServiceSelection{
	"oil_change":       {ID: "oil_change", Name: "Troca de Óleo e Filtro", BasePrice: 150, Currency: catalogueCurrency},
	"brakes":           {ID: "brakes", Name: "Revisão de Freios", BasePrice: 280, Currency: catalogueCurrency},
	"suspension":       {ID: "suspension", Name: "Reparo de Suspensão", BasePrice: 350, Currency: catalogueCurrency},
	"diagnostic":       {ID: "diagnostic", Name: "Diagnóstico Completo", BasePrice: 120, Currency: catalogueCurrency},
	"maintenance":      {ID: "maintenance", Name: "Revisão Anual", BasePrice: 250, Currency: catalogueCurrency},
	"battery":          {ID: "battery", Name: "Troca de Bateria", BasePrice: 180, Currency: catalogueCurrency},
	"air_conditioning": {ID: "air_conditioning", Name: "Ar-Condicionado", BasePrice: 160, Currency: catalogueCurrency},
	"transmission":     {ID: "transmission", Name: "Câmbio", BasePrice: 650, Currency: catalogueCurrency},
	"engine":           {ID: "engine", Name: "Reparo de Motor", BasePrice: 1200, Currency: catalogueCurrency},
	"electrical":       {ID: "electrical", Name: "Elétrica", BasePrice: 200, Currency: catalogueCurrency},
	"clutch":           {ID: "clutch", Name: "Troca de Embreagem", BasePrice: 550, Currency: catalogueCurrency},
	"inspection":       {ID: "inspection", Name: "Vistoria", BasePrice: 90, Currency: catalogueCurrency},
	"tyres":            {ID: "tyres", Name: "Troca de Pneus", BasePrice: 100, Currency: catalogueCurrency},
	"exhaust":          {ID: "exhaust", Name: "Escapamento", BasePrice: 220, Currency: catalogueCurrency},
}

// TimeSlots are the bookable start times, on the hour.
var TimeSlots = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

// LookupService returns the catalogue entry for id.
func LookupService(id string) (models.ServiceSelection, bool) {
	s, ok := catalogue[id]
	return s, ok
}

// Services lists the catalogue ordered by id.
func Services() []models.ServiceSelection {
	out := make([]models.ServiceSelection, 0, len(catalogue))
	for _, s := range catalogue {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func validTimeSlot(t string) bool {
	for _, slot := range TimeSlots {
		if slot == t {
			return true
		}
	}
	return false
}
