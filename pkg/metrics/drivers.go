package metrics

const (
	DRIVER_IMPACT_POSITIVE = "positive"
	DRIVER_IMPACT_NEGATIVE = "negative"
)

type NPSDriver struct {
	Attribute   string  `json:"attribute"`
	Performance int     `json:"performance"`
	Importance  float64 `json:"importance"`
	Impact      string  `json:"impact"`
	Rank        int     `json:"rank"`
}

// NPSDrivers returns a fixed driver breakdown. The survey has no attribute rating questions yet,
// so nothing here is derived from responses.
// TODO: derive drivers once attribute ratings are collected (correlate each attribute with d11_nps).
func NPSDrivers(bankID string) []NPSDriver {
	return []NPSDriver{
		{Attribute: "Digital Trust", Performance: 82, Importance: 0.88, Impact: DRIVER_IMPACT_POSITIVE, Rank: 1},
		{Attribute: "Mobile App", Performance: 74, Importance: 0.75, Impact: DRIVER_IMPACT_POSITIVE, Rank: 2},
		{Attribute: "Service Speed", Performance: 45, Importance: 0.82, Impact: DRIVER_IMPACT_NEGATIVE, Rank: 3},
		{Attribute: "Fee Transparency", Performance: 61, Importance: 0.65, Impact: DRIVER_IMPACT_POSITIVE, Rank: 4},
	}
}
