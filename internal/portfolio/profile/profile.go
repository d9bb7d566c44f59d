package profile

// Main is the landing-page block of an account's portfolio. Exactly one row
// per account, created at signup with placeholder content.
type Main struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"-"`
	Greeting      string `json:"greeting"`
	SmallGreeting string `json:"smallGreeting"`
	Introduce     string `json:"introduce"`
	Name          string `json:"name"`
	Job           string `json:"job"`
	WorkYears     int    `json:"workYears"`
}

// SkillCategory names the skill section of the landing page. One per account.
type SkillCategory struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"-"`
	Name   string `json:"name"`
}

// Card kinds: every skill category holds up to one card of each kind per
// section name.
const (
	CardKindFirst  = "FIRST"
	CardKindSecond = "SECOND"
)

// Card is a titled content block inside the skill section.
type Card struct {
	ID              int64  `json:"id"`
	SkillCategoryID int64  `json:"-"`
	Kind            string `json:"-"`
	SectionName     string `json:"categoryName"`
	Title           string `json:"title"`
	SubTitle        string `json:"subTitle"`
	Content         string `json:"content"`
}

// Location is the account's contact block. One per account, seeded with
// placeholder coordinates at signup.
type Location struct {
	UserID      int64   `json:"-"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Address     string  `json:"address"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber"`
}
