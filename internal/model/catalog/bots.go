package catalog

// bots is the fixed directory of crop assistants. Localized names are
// shown on the landing page; chat sessions always open with the English
// identity.
var bots = []Bot{
	{Name: "Tomato", NameHi: "टमाटर", NameMr: "टोमॅटो", Emoji: "🍅"},
	{Name: "Mango", NameHi: "आम", NameMr: "आंबा", Emoji: "🥭"},
	{Name: "Rice", NameHi: "चावल", NameMr: "तांदूळ", Emoji: "🌾"},
	{Name: "Wheat", NameHi: "गेहूं", NameMr: "गहू", Emoji: "🌾"},
	{Name: "Cotton", NameHi: "कपास", NameMr: "कापूस", Emoji: "🌱"},
	{Name: "Sugarcane", NameHi: "गन्ना", NameMr: "ऊस", Emoji: "🎋"},
	{Name: "Potato", NameHi: "आलू", NameMr: "बटाटा", Emoji: "🥔"},
	{Name: "Onion", NameHi: "प्याज", NameMr: "कांदा", Emoji: "🧅"},
}

// Bots returns the crop assistant directory.
func Bots() []Bot {
	out := make([]Bot, len(bots))
	copy(out, bots)
	return out
}

// FindBot looks a bot up by its English crop name.
func FindBot(name string) (Bot, bool) {
	for _, b := range bots {
		if b.Name == name {
			return b, true
		}
	}
	return Bot{}, false
}
