package signals

// Transfer-carbon estimation constants from the Sustainable Web Design
// model: energy per gigabyte transferred and world-average grid intensity.
// These are heuristic published figures, kept as configuration constants
// rather than re-derived.
const (
	// CarbonModel identifies the estimation model in results.
	CarbonModel = "swd"

	kilowattHoursPerGB = 0.81
	gramsCO2PerKWh     = 442.0

	bytesPerGB = 1e9
)

// CarbonEstimate is the estimated CO2-equivalent cost of transferring a
// page's bytes once.
type CarbonEstimate struct {
	Grams float64 `json:"grams"`
	Model string  `json:"model"`
}

// EstimateTransferCarbon converts transferred bytes into estimated grams of
// CO2. Pure function; monotonic in transferBytes.
func EstimateTransferCarbon(transferBytes int) CarbonEstimate {
	if transferBytes < 0 {
		transferBytes = 0
	}
	gb := float64(transferBytes) / bytesPerGB
	return CarbonEstimate{
		Grams: gb * kilowattHoursPerGB * gramsCO2PerKWh,
		Model: CarbonModel,
	}
}
