// Package catalog holds the fixed categorical inputs the prompt builders and
// the selectors in the UI draw from.
package catalog

type Category string

const (
	CategoryWork       Category = "Work"
	CategorySchool     Category = "School"
	CategoryHealth     Category = "Health"
	CategoryFamily     Category = "Family"
	CategoryTransport  Category = "Transport"
	CategoryTechnology Category = "Technology"
	CategoryWeather    Category = "Weather"
)

var Categories = []Category{
	CategoryWork, CategorySchool, CategoryHealth, CategoryFamily,
	CategoryTransport, CategoryTechnology, CategoryWeather,
}

type Scenario string

var Scenarios = []Scenario{
	"Late to Class",
	"Missed a Deadline",
	"Didn't Attend a Meeting",
	"Family Emergency",
	"Health Issue",
	"Can't Make It",
	"Need Extension",
}

type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

var Urgencies = []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh}

type Tone string

const (
	ToneFormal    Tone = "Formal"
	ToneEmotional Tone = "Emotional"
	ToneCasual    Tone = "Casual"
)

var Tones = []Tone{ToneFormal, ToneEmotional, ToneCasual}

// ApologyContext is who the apology is owed to.
type ApologyContext string

var ApologyContexts = []ApologyContext{"Work", "School", "Family", "Friend"}

type ProofType string

const (
	ProofHospitalCertificate ProofType = "Hospital Certificate"
	ProofWhatsAppChat        ProofType = "WhatsApp Chat"
	ProofLocationLog         ProofType = "Location Log"
)

var ProofTypes = []ProofType{ProofHospitalCertificate, ProofWhatsAppChat, ProofLocationLog}

type Relation string

var Relations = []Relation{"Mom", "Dad", "Doctor", "College Office", "Spouse", "Friend", "Boss"}

type EmergencyType string

var EmergencyTypes = []EmergencyType{
	"medical emergency",
	"accident",
	"family issue",
	"urgent meeting",
	"college notice",
}

// Believability is the ranking label attached to a generated excuse.
type Believability string

const (
	HighlyBelievable   Believability = "Highly Believable"
	SomewhatBelievable Believability = "Somewhat Believable"
	LessBelievable     Believability = "Less Believable"
)

var Believabilities = []Believability{HighlyBelievable, SomewhatBelievable, LessBelievable}

// Badge returns the label with its traffic-light marker.
func (b Believability) Badge() string {
	switch b {
	case HighlyBelievable:
		return "🟢 " + string(b)
	case LessBelievable:
		return "🔴 " + string(b)
	default:
		return "🟡 " + string(b)
	}
}
