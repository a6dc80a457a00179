package models

// PortalSettings is the single mutable configuration record: notice
// text, logo, and the head/president contact block shown on printed
// documents. Saves replace it wholesale.
type PortalSettings struct {
	Logo     string `json:"logo"`
	Notice   string `json:"notice"`
	HeadName string `json:"headName"`
	HeadNum  string `json:"headNum"`
	HeadImg  string `json:"headImg"`
	PresName string `json:"presName"`
	PresNum  string `json:"presNum"`
	PresImg  string `json:"presImg"`
}

// DefaultSettings returns the built-in configuration used until an
// administrator saves their own.
func DefaultSettings() PortalSettings {
	return PortalSettings{
		Logo:     "https://upload.wikimedia.org/wikipedia/commons/thumb/e/e4/Logo_of_Bangladesh_Madrasah_Education_Board.svg/1024px-Logo_of_Bangladesh_Madrasah_Education_Board.svg.png",
		Notice:   "২০২৫ শিক্ষাবর্ষে ভর্তি চলছে। সিট সংখ্যা সীমিত!",
		HeadName: "মাওলানা আব্দুল্লাহ",
		HeadNum:  "01340-666396",
		HeadImg:  "https://picsum.photos/seed/principal/200",
		PresName: "আলহাজ্ব আব্দুর রহমান",
		PresNum:  "01724-399963",
		PresImg:  "https://picsum.photos/seed/president/200",
	}
}
