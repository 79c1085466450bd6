package service

import (
	"time"

	"agrimitra/internal/model/catalog"
)

// seedDiseases is the initial disease library, loaded on first run when
// the collection is empty.
func seedDiseases() []*catalog.Disease {
	return []*catalog.Disease{
		{
			ID:          "tomato-late-blight",
			Name:        "Tomato Late Blight",
			Image:       "https://images.unsplash.com/photo-1592841200221-a6898f307baa?w=600",
			Description: "Late blight is a devastating disease affecting tomato plants, caused by the pathogen Phytophthora infestans.",
			Symptoms:    "Dark brown spots on leaves, white mold on undersides, rapid plant death",
			Treatment:   "Remove infected plants, apply copper-based fungicides, improve air circulation",
		},
		{
			ID:          "rice-blast",
			Name:        "Rice Blast",
			Image:       "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=600",
			Description: "Rice blast is one of the most serious diseases of rice worldwide.",
			Symptoms:    "Diamond-shaped lesions on leaves, neck rot, panicle blast",
			Treatment:   "Use resistant varieties, proper water management, fungicide application",
		},
		{
			ID:          "wheat-rust",
			Name:        "Wheat Rust",
			Image:       "https://images.unsplash.com/photo-1574943320219-553eb213f72d?w=600",
			Description: "Rust diseases are among the most destructive diseases of wheat.",
			Symptoms:    "Orange-red pustules on leaves and stems, yellowing of plant tissue",
			Treatment:   "Plant resistant varieties, timely fungicide application, crop rotation",
		},
		{
			ID:          "potato-blight",
			Name:        "Potato Blight",
			Image:       "https://images.unsplash.com/photo-1518977676601-b53f82aba655?w=600",
			Description: "Potato blight rapidly destroys potato crops during wet weather.",
			Symptoms:    "Dark spots on leaves, white fungal growth, tuber rot",
			Treatment:   "Preventive fungicide sprays, destroy infected plants, proper spacing",
		},
		{
			ID:          "cotton-wilt",
			Name:        "Cotton Wilt",
			Image:       "https://images.unsplash.com/photo-1615811361523-6bd03d7748e7?w=600",
			Description: "Fusarium wilt is a soil-borne disease affecting cotton plants.",
			Symptoms:    "Yellowing of leaves, wilting of plants, vascular discoloration",
			Treatment:   "Use resistant varieties, soil solarization, crop rotation",
		},
		{
			ID:          "mango-anthracnose",
			Name:        "Mango Anthracnose",
			Image:       "https://images.unsplash.com/photo-1605027990121-cbae9d0c3d86?w=600",
			Description: "Anthracnose is a major fungal disease of mango fruits and flowers.",
			Symptoms:    "Black spots on fruits, flower blight, premature fruit drop",
			Treatment:   "Prune infected parts, apply fungicides, improve orchard hygiene",
		},
		{
			ID:          "onion-purple-blotch",
			Name:        "Onion Purple Blotch",
			Image:       "https://images.unsplash.com/photo-1618512496248-a07fe83aa8cb?w=600",
			Description: "Purple blotch causes significant yield losses in onion crops.",
			Symptoms:    "Purple-brown lesions on leaves, concentric rings, leaf blight",
			Treatment:   "Fungicide application, crop rotation, remove crop debris",
		},
		{
			ID:          "sugarcane-red-rot",
			Name:        "Sugarcane Red Rot",
			Image:       "https://images.unsplash.com/photo-1542601098-3adb3b6c4f8f?w=600",
			Description: "Red rot is one of the most destructive diseases of sugarcane.",
			Symptoms:    "Reddening of internal tissues, white fungal patches, stalk hollowing",
			Treatment:   "Plant disease-free sets, use resistant varieties, proper drainage",
		},
		{
			ID:          "banana-panama-disease",
			Name:        "Banana Panama Disease",
			Image:       "https://images.unsplash.com/photo-1571771894821-ce9b6c11b08e?w=600",
			Description: "Panama disease is a soil-borne fungal disease affecting banana plantations.",
			Symptoms:    "Yellowing of older leaves, splitting of pseudostem, plant death",
			Treatment:   "Use resistant varieties, practice quarantine, soil sterilization",
		},
		{
			ID:          "grape-downy-mildew",
			Name:        "Grape Downy Mildew",
			Image:       "https://images.unsplash.com/photo-1599819177818-c28e1f4d6a0b?w=600",
			Description: "Downy mildew is a serious disease of grapevines in humid regions.",
			Symptoms:    "Oil spots on leaves, white downy growth on undersides, fruit rot",
			Treatment:   "Fungicide sprays, improve air circulation, remove infected leaves",
		},
	}
}

// seedNews is the initial news feed, loaded on first run when the
// collection is empty.
func seedNews() []*catalog.NewsArticle {
	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	return []*catalog.NewsArticle{
		{
			ID:          "agricultural-policy-small-farmers",
			Title:       "New Agricultural Policy Benefits Small Farmers",
			Description: "Government announces support package for marginal farmers",
			URL:         "#",
			Image:       "https://images.unsplash.com/photo-1625246333195-78d9c38ad449?w=800",
			PublishedAt: base.AddDate(0, 0, 3),
		},
		{
			ID:          "organic-farming-growth",
			Title:       "Organic Farming Shows 30% Growth",
			Description: "Demand for organic produce continues to rise nationwide",
			URL:         "#",
			Image:       "https://images.unsplash.com/photo-1574943320219-553eb213f72d?w=800",
			PublishedAt: base.AddDate(0, 0, 2),
		},
		{
			ID:          "smart-irrigation-saves-water",
			Title:       "Smart Irrigation Technology Saves Water",
			Description: "New IoT-based systems reduce water usage by 40%",
			URL:         "#",
			Image:       "https://images.unsplash.com/photo-1592982537447-7440770cbfc9?w=800",
			PublishedAt: base.AddDate(0, 0, 1),
		},
		{
			ID:          "crop-insurance-expanded",
			Title:       "Crop Insurance Scheme Expanded",
			Description: "More farmers eligible for comprehensive coverage",
			URL:         "#",
			Image:       "https://images.unsplash.com/photo-1625246333195-78d9c38ad449?w=800",
			PublishedAt: base,
		},
	}
}
