package model

// Carrier labels used by the solved networks.
const (
	CarrierOnwind        = "onwind"
	CarrierOffwindAC     = "offwind-ac"
	CarrierOffwindDC     = "offwind-dc"
	CarrierSolar         = "solar"
	CarrierSolarRooftop  = "solar rooftop"
	CarrierCCGT          = "CCGT"
	CarrierOCGT          = "OCGT"
	CarrierGas           = "gas"
	ComponentGenerator   = "Generator"
	ComponentLink        = "Link"
	ComponentStore       = "Store"
	ComponentStorageUnit = "StorageUnit"
)

// Category groups carriers in the report tables.
type Category string

const (
	CategoryWind  Category = "wind"
	CategorySolar Category = "solar"
	CategoryGas   Category = "gas"
)

// Categories lists report categories in column order.
var Categories = []Category{CategoryWind, CategorySolar, CategoryGas}

func (c Category) String() string { return string(c) }
