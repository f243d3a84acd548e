package grib1

type parameter struct {
	shortName, name, units string
}

var unknownParameter = parameter{"unknown", "unknown", "unknown"}

// wmoParameters is the WMO international exchange table (table2Version <= 3).
var wmoParameters = map[IndicatorOfParameter]parameter{
	1:  {"pres", "Pressure", "Pa"},
	2:  {"prmsl", "Pressure reduced to MSL", "Pa"},
	6:  {"z", "Geopotential", "m**2 s**-2"},
	7:  {"gh", "Geopotential height", "gpm"},
	11: {"t", "Temperature", "K"},
	17: {"dpt", "Dew point temperature", "K"},
	33: {"u", "U component of wind", "m s**-1"},
	34: {"v", "V component of wind", "m s**-1"},
	51: {"q", "Specific humidity", "kg kg**-1"},
	52: {"r", "Relative humidity", "%"},
	61: {"tp", "Total precipitation", "kg m**-2"},
	71: {"tcc", "Total cloud cover", "%"},
}

// ecmwfParameters is ECMWF local table 128.
var ecmwfParameters = map[IndicatorOfParameter]parameter{
	ParameterIDGeopotential:                   {"z", "Geopotential", "m**2 s**-2"},
	ParameterIDTemperature:                    {"t", "Temperature", "K"},
	ParameterIDUComponentOfWind:               {"u", "U component of wind", "m s**-1"},
	ParameterIDVComponentOfWind:               {"v", "V component of wind", "m s**-1"},
	ParameterIDSpecificHumidity:               {"q", "Specific humidity", "kg kg**-1"},
	ParameterIDSurfacePressure:                {"sp", "Surface pressure", "Pa"},
	ParameterIDMeanSeaLevelPressure:           {"msl", "Mean sea level pressure", "Pa"},
	ParameterIDRelativeHumidity:               {"r", "Relative humidity", "%"},
	ParameterIDTotalCloudCover:                {"tcc", "Total cloud cover", "(0 - 1)"},
	ParameterID10MeterUWindComponent:          {"10u", "10 metre U wind component", "m s**-1"},
	ParameterID10MeterVWindComponent:          {"10v", "10 metre V wind component", "m s**-1"},
	ParameterID2MeterTemperature:              {"2t", "2 metre temperature", "K"},
	ParameterID2MeterDewpointTemperature:      {"2d", "2 metre dewpoint temperature", "K"},
	ParameterIDSurfaceSolarRadiationDownwards: {"ssrd", "Surface solar radiation downwards", "J m**-2"},
	ParameterIDTotalPrecipitation:             {"tp", "Total precipitation", "m"},
}

func lookupParameter(table2Version uint8, id IndicatorOfParameter) parameter {
	var table map[IndicatorOfParameter]parameter
	switch {
	case table2Version <= 3:
		table = wmoParameters
	case table2Version == 128:
		table = ecmwfParameters
	}
	if p, ok := table[id]; ok {
		return p
	}
	return unknownParameter
}

// typeOfLevelNames follows Code table 3.
var typeOfLevelNames = map[uint8]string{
	1:   "surface",
	8:   "nominalTop",
	100: "isobaricInhPa",
	102: "meanSea",
	103: "heightAboveSea",
	105: "heightAboveGround",
	109: "hybrid",
	111: "depthBelowLand",
	112: "depthBelowLandLayer",
	200: "entireAtmosphere",
}

func typeOfLevelName(code uint8) string {
	if name, ok := typeOfLevelNames[code]; ok {
		return name
	}
	return "unknown"
}

// gridTypeNames follows Code table 6.
var gridTypeNames = map[DataRepresentationType]string{
	DataRepresentationTypeLL: "regular_ll",
	DataRepresentationTypeMM: "mercator",
	DataRepresentationTypeLC: "lambert",
	DataRepresentationTypeGG: "regular_gg",
	DataRepresentationTypePS: "polar_stereographic",
	DataRepresentationType10: "rotated_ll",
	DataRepresentationTypeSH: "sh",
}

func gridTypeName(t DataRepresentationType) string {
	if name, ok := gridTypeNames[t]; ok {
		return name
	}
	return "unknown"
}
