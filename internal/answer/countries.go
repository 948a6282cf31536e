package answer

// Countries is the built-in list of canonical origin names offered by the
// suggestion dropdown.
var Countries = []string{
	"Afghanistan", "Albania", "Algeria", "Andorra", "Angola", "Antigua and Barbuda",
	"Argentina", "Armenia", "Australia", "Austria", "Azerbaijan", "Bahamas",
	"Bahrain", "Bangladesh", "Barbados", "Belarus", "Belgium", "Belize", "Benin",
	"Bhutan", "Bolivia", "Bosnia and Herzegovina", "Botswana", "Brazil", "Brunei",
	"Bulgaria", "Burkina Faso", "Burundi", "Cambodia", "Cameroon", "Canada",
	"Cape Verde", "Central African Republic", "Chad", "Chile", "China", "Colombia",
	"Comoros", "Costa Rica", "Croatia", "Cuba", "Cyprus", "Czechia",
	"Democratic Republic of the Congo", "Denmark", "Djibouti", "Dominica",
	"Dominican Republic", "Ecuador", "Egypt", "El Salvador", "Equatorial Guinea",
	"Eritrea", "Estonia", "Eswatini", "Ethiopia", "Fiji", "Finland", "France",
	"Gabon", "Gambia", "Georgia", "Germany", "Ghana", "Greece", "Greenland",
	"Grenada", "Guatemala", "Guinea", "Guinea-Bissau", "Guyana", "Haiti",
	"Honduras", "Hungary", "Iceland", "India", "Indonesia", "Iran", "Iraq",
	"Ireland", "Israel", "Italy", "Ivory Coast", "Jamaica", "Japan", "Jordan",
	"Kazakhstan", "Kenya", "Kiribati", "Kuwait", "Kyrgyzstan", "Laos", "Latvia",
	"Lebanon", "Lesotho", "Liberia", "Libya", "Liechtenstein", "Lithuania",
	"Luxembourg", "Madagascar", "Malawi", "Malaysia", "Maldives", "Mali", "Malta",
	"Marshall Islands", "Mauritania", "Mauritius", "Mexico", "Micronesia",
	"Moldova", "Monaco", "Mongolia", "Montenegro", "Morocco", "Mozambique",
	"Myanmar", "Namibia", "Nauru", "Nepal", "Netherlands", "New Zealand",
	"Nicaragua", "Niger", "Nigeria", "North Korea", "North Macedonia", "Norway",
	"Oman", "Pakistan", "Palau", "Panama", "Papua New Guinea", "Paraguay", "Peru",
	"Philippines", "Poland", "Portugal", "Qatar", "Republic of the Congo",
	"Romania", "Russia", "Rwanda", "Saint Kitts and Nevis", "Saint Lucia",
	"Saint Vincent and the Grenadines", "Samoa", "San Marino",
	"Sao Tome and Principe", "Saudi Arabia", "Senegal", "Serbia", "Seychelles",
	"Sierra Leone", "Singapore", "Slovakia", "Slovenia", "Solomon Islands",
	"Somalia", "South Africa", "South Korea", "South Sudan", "Spain", "Sri Lanka",
	"Sudan", "Suriname", "Sweden", "Switzerland", "Syria", "Taiwan", "Tajikistan",
	"Tanzania", "Thailand", "Timor-Leste", "Togo", "Tonga", "Trinidad and Tobago",
	"Tunisia", "Turkey", "Turkmenistan", "Tuvalu", "Uganda", "Ukraine",
	"United Arab Emirates", "United Kingdom", "United States", "Uruguay",
	"Uzbekistan", "Vanuatu", "Vatican City", "Venezuela", "Vietnam", "Yemen",
	"Zambia", "Zimbabwe",
}

var countryAliases = map[string][]string{
	"United States":                    {"usa", "us", "america", "united states of america"},
	"United Kingdom":                   {"uk", "britain", "great britain", "england"},
	"United Arab Emirates":             {"uae"},
	"Democratic Republic of the Congo": {"drc", "dr congo", "congo kinshasa"},
	"Republic of the Congo":            {"congo", "congo brazzaville"},
	"Ivory Coast":                      {"cote d'ivoire", "côte d'ivoire"},
	"Czechia":                          {"czech republic"},
	"Eswatini":                         {"swaziland"},
	"Myanmar":                          {"burma"},
	"Timor-Leste":                      {"east timor"},
	"North Macedonia":                  {"macedonia"},
	"Cape Verde":                       {"cabo verde"},
}

// DefaultMatcher returns a Matcher loaded with Countries and common aliases.
func DefaultMatcher() *Matcher {
	m := NewMatcher()
	for _, c := range Countries {
		m.Register(c, countryAliases[c]...)
	}
	return m
}
