package oneonone

var usStateZones = map[string]string{
	"AL": "America/Chicago",
	"AK": "America/Anchorage",
	"AZ": "America/Phoenix",
	"AR": "America/Chicago",
	"CA": "America/Los_Angeles",
	"CO": "America/Denver",
	"CT": "America/New_York",
	"DE": "America/New_York",
	"DC": "America/New_York",
	"FL": "America/New_York",
	"GA": "America/New_York",
	"HI": "Pacific/Honolulu",
	"ID": "America/Boise",
	"IL": "America/Chicago",
	"IN": "America/Indiana/Indianapolis",
	"IA": "America/Chicago",
	"KS": "America/Chicago",
	"KY": "America/New_York",
	"LA": "America/Chicago",
	"ME": "America/New_York",
	"MD": "America/New_York",
	"MA": "America/New_York",
	"MI": "America/Detroit",
	"MN": "America/Chicago",
	"MS": "America/Chicago",
	"MO": "America/Chicago",
	"MT": "America/Denver",
	"NE": "America/Chicago",
	"NV": "America/Los_Angeles",
	"NH": "America/New_York",
	"NJ": "America/New_York",
	"NM": "America/Denver",
	"NY": "America/New_York",
	"NC": "America/New_York",
	"ND": "America/Chicago",
	"OH": "America/New_York",
	"OK": "America/Chicago",
	"OR": "America/Los_Angeles",
	"PA": "America/New_York",
	"RI": "America/New_York",
	"SC": "America/New_York",
	"SD": "America/Chicago",
	"TN": "America/Chicago",
	"TX": "America/Chicago",
	"UT": "America/Denver",
	"VT": "America/New_York",
	"VA": "America/New_York",
	"WA": "America/Los_Angeles",
	"WV": "America/New_York",
	"WI": "America/Chicago",
	"WY": "America/Denver",
}

var caProvinceZones = map[string]string{
	"AB": "America/Edmonton",
	"BC": "America/Vancouver",
	"MB": "America/Winnipeg",
	"NB": "America/Moncton",
	"NL": "America/St_Johns",
	"NS": "America/Halifax",
	"NT": "America/Yellowknife",
	"NU": "America/Iqaluit",
	"ON": "America/Toronto",
	"PE": "America/Halifax",
	"QC": "America/Montreal",
	"SK": "America/Regina",
	"YT": "America/Whitehorse",
}

// metroZones keys are the billing/region codes used in the directory export.
var metroZones = map[string]string{
	"SFO": "America/Los_Angeles",
	"LAX": "America/Los_Angeles",
	"SEA": "America/Los_Angeles",
	"PDX": "America/Los_Angeles",
	"DEN": "America/Denver",
	"PHX": "America/Phoenix",
	"AUS": "America/Chicago",
	"DFW": "America/Chicago",
	"CHI": "America/Chicago",
	"NYC": "America/New_York",
	"BOS": "America/New_York",
	"ATL": "America/New_York",
	"MIA": "America/New_York",
	"WAS": "America/New_York",
	"TOR": "America/Toronto",
	"VAN": "America/Vancouver",
	"MTL": "America/Montreal",
	"MEX": "America/Mexico_City",
	"SAO": "America/Sao_Paulo",
	"LON": "Europe/London",
	"DUB": "Europe/Dublin",
	"AMS": "Europe/Amsterdam",
	"BER": "Europe/Berlin",
	"PAR": "Europe/Paris",
	"MAD": "Europe/Madrid",
	"ZRH": "Europe/Zurich",
	"TLV": "Asia/Jerusalem",
	"BLR": "Asia/Kolkata",
	"SIN": "Asia/Singapore",
	"TYO": "Asia/Tokyo",
	"SYD": "Australia/Sydney",
}
