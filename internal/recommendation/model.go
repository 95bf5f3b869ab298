package recommendation

// FormData is what the user typed, sent upstream as-is.
type FormData struct {
	Age        string `json:"age" form:"age"`
	Income     string `json:"income" form:"income"`
	Dependents string `json:"dependents" form:"dependents"`
	Risk       string `json:"risk" form:"risk"`
}

type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// RiskOptions are the labels offered by the risk select, in display order.
var RiskOptions = []string{"Low", "Medium", "High"}

// Range is the input bracket a recommendation was computed for.
// Whether the bounds are inclusive is up to the recommendation service.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Recommendation is a single suggested plan, read-only on this side.
type Recommendation struct {
	Plan          string        `json:"plan"`
	Coverage      string        `json:"coverage"`
	TermLength    string        `json:"termLength"`
	Explanation   string        `json:"explanation"`
	Age           Range         `json:"age"`
	RiskTolerance RiskTolerance `json:"riskTolerance"`
	Dependents    Range         `json:"dependents"`
	Income        Range         `json:"income"`
}

// Response is the success body of the recommendation endpoint.
type Response struct {
	Data []Recommendation `json:"data"`
}
