package vehicle

import (
	"context"

	"quickmechanic/models"
)

// fixturePlates is the local plate database used when no lookup backend is
// configured. Keys are normalized plates.
var fixturePlates = map[string]models.Vehicle{
	"ABC1234": {Plate: "ABC1234", Make: "volkswagen", MakeName: "Volkswagen", Model: "Gol", Year: "2020", Color: "Prata", Fuel: "Flex", Version: "1.0 MPI", Category: "Hatch", Transmission: "Manual", Doors: "4", Country: "Brasil"},
	"BRA2E19": {Plate: "BRA2E19", Make: "fiat", MakeName: "Fiat", Model: "Argo", Year: "2021", Color: "Branco", Fuel: "Flex", Version: "1.3 Drive", Category: "Hatch", Transmission: "Manual", Doors: "4", Country: "Brasil"},
	"XYZ9876": {Plate: "XYZ9876", Make: "chevrolet", MakeName: "Chevrolet", Model: "Onix", Year: "2019", Color: "Preto", Fuel: "Flex", Version: "1.0 LT", Category: "Hatch", Transmission: "Manual", Doors: "4", Country: "Brasil"},
	"QWE4R56": {Plate: "QWE4R56", Make: "toyota", MakeName: "Toyota", Model: "Corolla", Year: "2022", Color: "Cinza", Fuel: "Flex", Version: "2.0 XEi", Category: "Sedan", Transmission: "Automático", Doors: "4", Country: "Brasil"},
	"HBC3C21": {Plate: "HBC3C21", Make: "honda", MakeName: "Honda", Model: "Civic", Year: "2018", Color: "Azul", Fuel: "Flex", Version: "2.0 EXL", Category: "Sedan", Transmission: "Automático", Doors: "4", Country: "Brasil"},
	"JKL5678": {Plate: "JKL5678", Make: "ford", MakeName: "Ford", Model: "Ka", Year: "2017", Color: "Vermelho", Fuel: "Flex", Version: "1.0 SE", Category: "Hatch", Transmission: "Manual", Doors: "4", Country: "Brasil"},
	"RIO2A18": {Plate: "RIO2A18", Make: "hyundai", MakeName: "Hyundai", Model: "HB20", Year: "2020", Color: "Branco", Fuel: "Flex", Version: "1.0 Comfort", Category: "Hatch", Transmission: "Manual", Doors: "4", Country: "Brasil"},
	"MNO1P23": {Plate: "MNO1P23", Make: "renault", MakeName: "Renault", Model: "Kwid", Year: "2023", Color: "Laranja", Fuel: "Flex", Version: "1.0 Zen", Category: "Hatch", Transmission: "Manual", Doors: "4", Country: "Brasil"},
}

// FixtureLookup serves plates from the built-in fixture database.
type FixtureLookup struct{}

func (FixtureLookup) LookupPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := fixturePlates[NormalizePlate(plate)]
	if !ok {
		return nil, ErrNoMatch
	}
	return &v, nil
}
