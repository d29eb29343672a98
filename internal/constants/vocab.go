package constants

// Fixed vocabularies offered by the entry form. Stored values are taken
// verbatim; the store does not re-validate against these lists.

var SkyOptions = []string{
	"Clear",
	"Partly Cloudy",
	"Mostly Cloudy",
	"Overcast",
	"Foggy",
	"Hazy",
}

var PrecipitationOptions = []string{
	"None",
	"Light Rain",
	"Heavy Rain",
	"Drizzle",
	"Snow",
	"Sleet",
	"Hail",
}

var TemperatureOptions = []string{
	"Below 0°C",
	"0-10°C",
	"10-20°C",
	"20-30°C",
	"Above 30°C",
}

var WindOptions = []string{
	"Calm",
	"Light Breeze",
	"Moderate Wind",
	"Strong Wind",
	"Storm",
}

var CommonTasks = []string{
	"Site Inspection",
	"Equipment Maintenance",
	"Material Delivery",
	"Safety Meeting",
	"Progress Documentation",
	"Quality Control Check",
	"Team Coordination",
	"Environmental Assessment",
	"Resource Planning",
	"Schedule Review",
}

var CommonEquipment = []string{
	"Safety Gear",
	"Hand Tools",
	"Power Tools",
	"Heavy Machinery",
	"Measuring Equipment",
	"Communication Devices",
	"First Aid Kit",
	"Documentation Tools",
	"Transportation",
	"Specialized Equipment",
}

var Units = []string{
	"Hours",
	"Days",
	"Units",
	"Pieces",
	"Meters",
	"Square Meters",
	"Cubic Meters",
	"Kilograms",
	"Tons",
	"Percentage",
}
