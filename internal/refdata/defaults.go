package refdata

// Built-in tables. Fuel burn figures follow the ICAO carbon emissions
// calculator stage-length tables (nm -> kg for the whole stage).
func defaultFile() fileData {
	return fileData{
		DefaultAircraft:   "A320",
		DefaultRouteGroup: "intra_region",
		CabinClasses: map[string]CabinClassProfile{
			"economy":         {AbreastRatio: 1.0, SeatPitchIn: 31},
			"premium_economy": {AbreastRatio: 1.2, SeatPitchIn: 38},
			"business":        {AbreastRatio: 1.5, SeatPitchIn: 60},
			"first":           {AbreastRatio: 2.0, SeatPitchIn: 80},
		},
		RouteGroups: map[string]RouteGroupProfile{
			"domestic":     {PassengerLoadFactor: 0.797, PassengerToCargoFactor: 0.933},
			"intra_region": {PassengerLoadFactor: 0.820, PassengerToCargoFactor: 0.960},
			"inter_region": {PassengerLoadFactor: 0.805, PassengerToCargoFactor: 0.897},
		},
		FuelTables: map[string][]FuelBreakpoint{
			"A320": {
				{125, 1672}, {250, 3430}, {500, 6009}, {750, 8503}, {1000, 10896},
				{1500, 15784}, {2000, 20792}, {2500, 25958}, {3000, 31328},
			},
			"B738": {
				{125, 1703}, {250, 3495}, {500, 6131}, {750, 8647}, {1000, 11060},
				{1500, 16011}, {2000, 21085}, {2500, 26353}, {3000, 31826},
			},
			"E190": {
				{125, 1200}, {250, 2437}, {500, 4271}, {750, 6063}, {1000, 7787},
				{1500, 11281}, {2000, 14862},
			},
			"AT76": {
				{125, 538}, {250, 1016}, {500, 1818}, {750, 2604}, {1000, 3390},
			},
			"A359": {
				{125, 3813}, {250, 6554}, {500, 11048}, {750, 15506}, {1000, 19810},
				{1500, 28648}, {2000, 37631}, {2500, 46815}, {3000, 56254},
				{4000, 75949}, {5000, 96906}, {6000, 119299}, {7000, 143326},
			},
			"B77W": {
				{125, 5045}, {250, 8781}, {500, 14956}, {750, 21099}, {1000, 27019},
				{1500, 39156}, {2000, 51464}, {2500, 64035}, {3000, 76904},
				{4000, 103678}, {5000, 132236}, {6000, 162789}, {7000, 195549},
			},
		},
		ModeFactors: map[string]ModeFactor{
			"rail": {KgPerPassengerKm: 0.035, DistanceMultiplier: 1.2},
			"road": {KgPerPassengerKm: 0.171, DistanceMultiplier: 1.25},
		},
		Airports: map[string]airportRecord{
			"LHR": {Name: "London Heathrow", Country: "GB", Lat: 51.4700, Lon: -0.4543},
			"LGW": {Name: "London Gatwick", Country: "GB", Lat: 51.1537, Lon: -0.1821},
			"MAN": {Name: "Manchester", Country: "GB", Lat: 53.3650, Lon: -2.2728},
			"EDI": {Name: "Edinburgh", Country: "GB", Lat: 55.9500, Lon: -3.3725},
			"CDG": {Name: "Paris Charles de Gaulle", Country: "FR", Lat: 49.0097, Lon: 2.5479},
			"ORY": {Name: "Paris Orly", Country: "FR", Lat: 48.7262, Lon: 2.3652},
			"FRA": {Name: "Frankfurt", Country: "DE", Lat: 50.0379, Lon: 8.5622},
			"MUC": {Name: "Munich", Country: "DE", Lat: 48.3538, Lon: 11.7861},
			"AMS": {Name: "Amsterdam Schiphol", Country: "NL", Lat: 52.3105, Lon: 4.7683},
			"BRU": {Name: "Brussels", Country: "BE", Lat: 50.9014, Lon: 4.4844},
			"MAD": {Name: "Madrid Barajas", Country: "ES", Lat: 40.4983, Lon: -3.5676},
			"BCN": {Name: "Barcelona El Prat", Country: "ES", Lat: 41.2974, Lon: 2.0833},
			"FCO": {Name: "Rome Fiumicino", Country: "IT", Lat: 41.8003, Lon: 12.2389},
			"MXP": {Name: "Milan Malpensa", Country: "IT", Lat: 45.6306, Lon: 8.7281},
			"ZRH": {Name: "Zurich", Country: "CH", Lat: 47.4582, Lon: 8.5555},
			"VIE": {Name: "Vienna", Country: "AT", Lat: 48.1103, Lon: 16.5697},
			"CPH": {Name: "Copenhagen", Country: "DK", Lat: 55.6180, Lon: 12.6508},
			"ARN": {Name: "Stockholm Arlanda", Country: "SE", Lat: 59.6498, Lon: 17.9238},
			"OSL": {Name: "Oslo Gardermoen", Country: "NO", Lat: 60.1976, Lon: 11.1004},
			"DUB": {Name: "Dublin", Country: "IE", Lat: 53.4264, Lon: -6.2499},
			"LIS": {Name: "Lisbon", Country: "PT", Lat: 38.7742, Lon: -9.1342},
			"JFK": {Name: "New York JFK", Country: "US", Lat: 40.6413, Lon: -73.7781},
			"LAX": {Name: "Los Angeles", Country: "US", Lat: 33.9416, Lon: -118.4085},
			"ORD": {Name: "Chicago O'Hare", Country: "US", Lat: 41.9742, Lon: -87.9073},
			"SFO": {Name: "San Francisco", Country: "US", Lat: 37.6213, Lon: -122.3790},
			"YYZ": {Name: "Toronto Pearson", Country: "CA", Lat: 43.6777, Lon: -79.6248},
			"DXB": {Name: "Dubai", Country: "AE", Lat: 25.2532, Lon: 55.3657},
			"SIN": {Name: "Singapore Changi", Country: "SG", Lat: 1.3644, Lon: 103.9915},
			"HND": {Name: "Tokyo Haneda", Country: "JP", Lat: 35.5494, Lon: 139.7798},
			"SYD": {Name: "Sydney", Country: "AU", Lat: -33.9399, Lon: 151.1753},
			"PEK": {Name: "Beijing Capital", Country: "CN", Lat: 40.0799, Lon: 116.6031},
			"GRU": {Name: "Sao Paulo Guarulhos", Country: "BR", Lat: -23.4356, Lon: -46.4731},
		},
		CarbonPrices: map[string]priceRecord{
			"DE": {Currency: "EUR", PricePerTon: 70},
			"FR": {Currency: "EUR", PricePerTon: 70},
			"NL": {Currency: "EUR", PricePerTon: 70},
			"BE": {Currency: "EUR", PricePerTon: 70},
			"ES": {Currency: "EUR", PricePerTon: 70},
			"IT": {Currency: "EUR", PricePerTon: 70},
			"AT": {Currency: "EUR", PricePerTon: 70},
			"IE": {Currency: "EUR", PricePerTon: 70},
			"PT": {Currency: "EUR", PricePerTon: 70},
			"FI": {Currency: "EUR", PricePerTon: 70},
			"GB": {Currency: "GBP", PricePerTon: 45},
			"CH": {Currency: "CHF", PricePerTon: 60},
			"NO": {Currency: "NOK", PricePerTon: 952},
			"SE": {Currency: "SEK", PricePerTon: 1200},
			"DK": {Currency: "DKK", PricePerTon: 180},
			"CA": {Currency: "CAD", PricePerTon: 80},
			"JP": {Currency: "JPY", PricePerTon: 289},
			"SG": {Currency: "SGD", PricePerTon: 25},
			"CN": {Currency: "CNY", PricePerTon: 95},
		},
	}
}
