package match

// Reference market values (and transfer fees paid, when known) for players
// that the stats-only sources cannot value. Values are in millions of euros.
var referenceValues = []Entry{
	// Premier League
	{Name: "Erling Haaland", MarketValue: 180, FeePaid: 60},
	{Name: "Mohamed Salah", MarketValue: 80, FeePaid: 36},
	{Name: "Cole Palmer", MarketValue: 110, FeePaid: 42.5},
	{Name: "Bukayo Saka", MarketValue: 140},
	{Name: "Phil Foden", MarketValue: 150},
	{Name: "Alexander Isak", MarketValue: 100, FeePaid: 70},
	{Name: "Bruno Fernandes", MarketValue: 70, FeePaid: 55},
	{Name: "Son Heung-min", MarketValue: 60, FeePaid: 30},
	{Name: "Ollie Watkins", MarketValue: 65, FeePaid: 28},
	{Name: "Nicolas Jackson", MarketValue: 55, FeePaid: 35},
	{Name: "Chris Wood", MarketValue: 5, FeePaid: 25},
	{Name: "Bryan Mbeumo", MarketValue: 50, FeePaid: 5.5},
	{Name: "Matheus Cunha", MarketValue: 55, FeePaid: 50},
	{Name: "Morgan Rogers", MarketValue: 30, FeePaid: 8},
	{Name: "Antoine Semenyo", MarketValue: 28, FeePaid: 10.5},
	{Name: "Dominic Solanke", MarketValue: 55, FeePaid: 65},
	{Name: "Cody Gakpo", MarketValue: 65, FeePaid: 45},
	{Name: "Luis Diaz", MarketValue: 75, FeePaid: 50},
	{Name: "Darwin Nunez", MarketValue: 70, FeePaid: 75},
	{Name: "Jhon Duran", MarketValue: 40, FeePaid: 18},
	{Name: "Yoane Wissa", MarketValue: 32, FeePaid: 2},
	{Name: "Jean-Philippe Mateta", MarketValue: 35, FeePaid: 14},
	{Name: "Eberechi Eze", MarketValue: 55, FeePaid: 16},

	// La Liga
	{Name: "Robert Lewandowski", MarketValue: 15},
	{Name: "Raphinha", MarketValue: 70, FeePaid: 58},
	{Name: "Lamine Yamal", MarketValue: 150},
	{Name: "Vinicius Junior", MarketValue: 200, FeePaid: 45},
	{Name: "Kylian Mbappe", MarketValue: 180},
	{Name: "Jude Bellingham", MarketValue: 180, FeePaid: 103},
	{Name: "Antoine Griezmann", MarketValue: 30},
	{Name: "Alexander Sorloth", MarketValue: 30, FeePaid: 32},

	// Bundesliga
	{Name: "Harry Kane", MarketValue: 100, FeePaid: 100},
	{Name: "Jamal Musiala", MarketValue: 130},
	{Name: "Florian Wirtz", MarketValue: 150},
	{Name: "Michael Olise", MarketValue: 60, FeePaid: 53},
	{Name: "Omar Marmoush", MarketValue: 55},
	{Name: "Loïs Openda", MarketValue: 65, FeePaid: 38.5},
	{Name: "Serge Gnabry", MarketValue: 50},
	{Name: "Leroy Sane", MarketValue: 60, FeePaid: 45},

	// Serie A
	{Name: "Lautaro Martinez", MarketValue: 110, FeePaid: 25},
	{Name: "Marcus Thuram", MarketValue: 70},
	{Name: "Dusan Vlahovic", MarketValue: 65, FeePaid: 81.6},
	{Name: "Rafael Leao", MarketValue: 80, FeePaid: 29.5},
	{Name: "Khvicha Kvaratskhelia", MarketValue: 85, FeePaid: 10},
	{Name: "Ademola Lookman", MarketValue: 55, FeePaid: 9},
	{Name: "Mateo Retegui", MarketValue: 35, FeePaid: 22},
	{Name: "Moise Kean", MarketValue: 40, FeePaid: 13},

	// Ligue 1
	{Name: "Bradley Barcola", MarketValue: 70, FeePaid: 45},
	{Name: "Ousmane Dembele", MarketValue: 60, FeePaid: 50},
	{Name: "Mason Greenwood", MarketValue: 40, FeePaid: 31.6},
	{Name: "Jonathan David", MarketValue: 55, FeePaid: 30},

	// Championship
	{Name: "Rodrigo Muniz", MarketValue: 12},
	{Name: "Sammie Szmodics", MarketValue: 10},
	{Name: "Josh Sargent", MarketValue: 15},
	{Name: "Carlton Morris", MarketValue: 6},
	{Name: "Borja Sainz", MarketValue: 8},

	// Eredivisie
	{Name: "Vangelis Pavlidis", MarketValue: 8},
	{Name: "Malik Tillman", MarketValue: 18},

	// Primeira Liga
	{Name: "Viktor Gyokeres", MarketValue: 75, FeePaid: 20},
	{Name: "Pedro Goncalves", MarketValue: 35},
	{Name: "Francisco Trincao", MarketValue: 20},

	// Brasileirão
	{Name: "Estevao", MarketValue: 30},
	{Name: "Yuri Alberto", MarketValue: 18},
	{Name: "Luiz Henrique", MarketValue: 15},
}

// ReferenceIndex returns an index over the built in reference values.
func ReferenceIndex() *Index {
	entries := make([]Entry, len(referenceValues))
	copy(entries, referenceValues)
	return NewIndex(entries)
}
