package domain

// AnalysisPhase names the variant an AnalysisState holds.
type AnalysisPhase string

const (
	PhaseIdle      AnalysisPhase = "IDLE"
	PhaseAnalyzing AnalysisPhase = "ANALYZING"
	PhaseSuccess   AnalysisPhase = "SUCCESS"
	PhaseFailed    AnalysisPhase = "FAILED"
)

// AnalysisState is the page state: exactly one of Idle, Analyzing, Succeeded or Failed.
type AnalysisState interface {
	Phase() AnalysisPhase
	// Displayed is the result the page keeps showing in this state, or nil.
	Displayed() *AnalysisResult
	isAnalysisState()
}

// Idle is the initial state; nothing has been submitted yet.
type Idle struct{}

// Analyzing means submission Generation is in flight.
// Previous keeps the last displayed result visible meanwhile.
type Analyzing struct {
	Generation uint64
	Previous   *AnalysisResult
}

// Succeeded holds the result of submission Generation.
type Succeeded struct {
	Generation uint64
	Result     *AnalysisResult
}

// Failed holds the error of submission Generation. Result is what stays on
// screen: the partial result if the interpretation was computed, else the previous one.
type Failed struct {
	Generation uint64
	Message    string
	Result     *AnalysisResult
}

func (Idle) Phase() AnalysisPhase      { return PhaseIdle }
func (Analyzing) Phase() AnalysisPhase { return PhaseAnalyzing }
func (Succeeded) Phase() AnalysisPhase { return PhaseSuccess }
func (Failed) Phase() AnalysisPhase    { return PhaseFailed }

func (Idle) Displayed() *AnalysisResult        { return nil }
func (s Analyzing) Displayed() *AnalysisResult { return s.Previous }
func (s Succeeded) Displayed() *AnalysisResult { return s.Result }
func (s Failed) Displayed() *AnalysisResult    { return s.Result }

func (Idle) isAnalysisState()      {}
func (Analyzing) isAnalysisState() {}
func (Succeeded) isAnalysisState() {}
func (Failed) isAnalysisState()    {}

// BeginAnalysis moves any state to Analyzing for submission gen.
func BeginAnalysis(s AnalysisState, gen uint64) AnalysisState {
	return Analyzing{Generation: gen, Previous: s.Displayed()}
}

// CompleteAnalysis applies the outcome of submission gen. It reports false and
// leaves s unchanged unless s is Analyzing that same submission, so a slower,
// older submission can never overwrite a newer one.
func CompleteAnalysis(s AnalysisState, gen uint64, result *AnalysisResult, err error) (AnalysisState, bool) {
	analyzing, ok := s.(Analyzing)
	if !ok || analyzing.Generation != gen {
		return s, false
	}

	if err == nil {
		return Succeeded{Generation: gen, Result: result}, true
	}

	shown := analyzing.Previous
	if result != nil && result.Interpretation != nil {
		shown = result
	}
	return Failed{Generation: gen, Message: err.Error(), Result: shown}, true
}
