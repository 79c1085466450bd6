package catalog

import "time"

// Disease is one entry of the disease library.
type Disease struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Name        string `bson:"name" json:"name"`
	Image       string `bson:"image" json:"image"`
	Description string `bson:"description" json:"description"`
	Symptoms    string `bson:"symptoms" json:"symptoms"`
	Treatment   string `bson:"treatment" json:"treatment"`
}

// NewsArticle is one entry of the agricultural news carousel.
type NewsArticle struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	URL         string    `bson:"url" json:"url"`
	Image       string    `bson:"image" json:"image"`
	PublishedAt time.Time `bson:"published_at" json:"published_at"`
}

// Bot is a specialized crop assistant offered on the landing page.
type Bot struct {
	Name   string `json:"name"`
	NameHi string `json:"name_hi"`
	NameMr string `json:"name_mr"`
	Emoji  string `json:"emoji"`
}

// Identity returns the bot identity string a chat session is opened with.
func (b Bot) Identity() string {
	return b.Name + " Specialist"
}
