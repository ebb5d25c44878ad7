package models

// View documents emitted for the dashboard. JSON field names are part
// of the contract with the front end and match the historical feed.

// ViewOverview is the headline summary document.
type ViewOverview struct {
	TotalCustomers             int     `json:"totalCustomers"`
	AvgTradelinesPerCustomer   float64 `json:"avgTradelinesPerCustomer"`
	ServiceableBase            int     `json:"serviceableBase"`
	PLPenetrationRate          float64 `json:"plPenetrationRate"`
	GoldenWindowCurveA         int     `json:"goldenWindowCurveA"`
	GoldenWindowCurveB         int     `json:"goldenWindowCurveB"`
	CustomersInGoldenWindowNow int     `json:"customersInGoldenWindowNow"`
	BureauDate                 string  `json:"bureauDate"`
}

// BucketSlice is one row of the bucket distribution chart.
type BucketSlice struct {
	Bucket    string  `json:"bucket"`
	Customers int     `json:"customers"`
	Pct       float64 `json:"pct"`
}

// LenderTypeSlice is one row of the lender-type distribution chart.
type LenderTypeSlice struct {
	LenderType string `json:"lenderType"`
	Customers  int    `json:"customers"`
}

// MixSlice is one row of the product-mix chart.
type MixSlice struct {
	Mix       string `json:"mix"`
	Customers int    `json:"customers"`
}

// AcctTypeSlice is one row of the account-type distribution chart.
type AcctTypeSlice struct {
	AcctType   string `json:"acctType"`
	Tradelines int    `json:"tradelines"`
}

// ViewPopulation describes the population composition.
type ViewPopulation struct {
	BucketDistribution     []BucketSlice     `json:"bucketDistribution"`
	LenderTypeDistribution []LenderTypeSlice `json:"lenderTypeDistribution"`
	ProductMix             []MixSlice        `json:"productMix"`
	AcctTypeDistribution   []AcctTypeSlice   `json:"acctTypeDistribution"`
}

// MonthCount is one histogram bucket keyed by month delta.
type MonthCount struct {
	Months int `json:"months"`
	Count  int `json:"count"`
}

// RangeCount is one bucket of a banded distribution ("0-60", "60-70", …).
type RangeCount struct {
	Bucket    string `json:"bucket"`
	Customers int    `json:"customers"`
}

// SegmentCount is one row of the credit-velocity chart.
type SegmentCount struct {
	Segment   string `json:"segment"`
	Customers int    `json:"customers"`
}

// ViewBehaviour holds the repayment-behaviour curves.
type ViewBehaviour struct {
	TimeToNextPLCurveA           []MonthCount   `json:"timeToNextPLCurveA"`
	TimeToNextPLCurveB           []MonthCount   `json:"timeToNextPLCurveB"`
	RepaymentQualityDistribution []RangeCount   `json:"repaymentQualityDistribution"`
	CreditVelocity               []SegmentCount `json:"creditVelocity"`
}

// TierCount is one row of a tier distribution chart.
type TierCount struct {
	Tier      string `json:"tier"`
	Customers int    `json:"customers"`
}

// ViewRisk holds risk and affordability tier distributions.
type ViewRisk struct {
	RiskTierDistribution      []TierCount `json:"riskTierDistribution"`
	AffordabilityDistribution []TierCount `json:"affordabilityDistribution"`
}

// FlagCount is one row of the timing-flag distribution.
type FlagCount struct {
	Flag      string `json:"flag"`
	Customers int    `json:"customers"`
}

// MonthCustomers is one months-since-anchor histogram bucket.
type MonthCustomers struct {
	Months    int `json:"months"`
	Customers int `json:"customers"`
}

// SeasonalMonth is one calendar month of the seasonal index. A flat
// distribution yields 1.0 for every month.
type SeasonalMonth struct {
	Month     int     `json:"month"`
	MonthName string  `json:"monthName"`
	Index     float64 `json:"index"`
}

// ViewTiming holds the timing cohort outputs.
type ViewTiming struct {
	TimingFlagDistribution []FlagCount      `json:"timingFlagDistribution"`
	MonthsSinceCarLoan     []MonthCustomers `json:"monthsSinceCarLoan"`
	SeasonalIndex          []SeasonalMonth  `json:"seasonalIndex"`
}

// WaterfallStage is one row of the TAM waterfall.
type WaterfallStage struct {
	Stage string `json:"stage"`
	Value int    `json:"value"`
	Type  string `json:"type"` // "start", "minus" or "total"
}

// SamSegments partitions the serviceable base by product eligibility.
type SamSegments struct {
	PLEligible  int `json:"plEligible"`
	LacEligible int `json:"lacEligible"`
	Deferred    int `json:"deferred"`
	Excluded    int `json:"excluded"`
}

// ProductModel is the per-product revenue model output.
type ProductModel struct {
	AvgTicketInr    float64 `json:"avgTicketInr"`
	AvgTenorMonths  int     `json:"avgTenorMonths"`
	YieldPct        float64 `json:"yieldPct"`
	CreditCostPct   float64 `json:"creditCostPct"`
	NetMarginPct    float64 `json:"netMarginPct"`
	PrepaymentAdj   float64 `json:"prepaymentAdj"`
	DisbursalsCount int     `json:"disbursalsCount"`
	AumYear1Inr     float64 `json:"aumYear1Inr"`
	RevenueYear1Inr float64 `json:"revenueYear1Inr"`
}

// RevenueModel combines the per-product models and totals.
type RevenueModel struct {
	PL                      ProductModel `json:"pl"`
	Lac                     ProductModel `json:"lac"`
	TotalAumYear1Inr        float64      `json:"totalAumYear1Inr"`
	TotalNetRevenueYear1Inr float64      `json:"totalNetRevenueYear1Inr"`
}

// AumPoint is one point of the non-compounding AUM projection.
type AumPoint struct {
	Month  int     `json:"month"`
	AumInr float64 `json:"aumInr"`
	Label  string  `json:"label"`
}

// ViewMonetisation holds the funnel and projection outputs.
type ViewMonetisation struct {
	TamWaterfall  []WaterfallStage `json:"tamWaterfall"`
	SamSegments   SamSegments      `json:"samSegments"`
	RevenueModel  RevenueModel     `json:"revenueModel"`
	AumProjection []AumPoint       `json:"aumProjection"`
}

// CohortCount is one row of the outreach cohort chart.
type CohortCount struct {
	Cohort    string `json:"cohort"`
	Customers int    `json:"customers"`
}

// ViewOutreach holds the outreach prioritisation cohorts.
type ViewOutreach struct {
	OutreachCohortDistribution []CohortCount `json:"outreachCohortDistribution"`
}

// AnchorSummary breaks down anchor-product coverage.
type AnchorSummary struct {
	Confirmed int `json:"confirmed"`
	Inferred  int `json:"inferred"`
	None      int `json:"none"`
	Ambiguous int `json:"ambiguous"`
}

// ConsistencyCheck reports the bucket-D vs repayment-grid cross check.
type ConsistencyCheck struct {
	Pass                  bool    `json:"pass"`
	BucketDHighQualityPct float64 `json:"bucketDHighQualityPct"`
}

// ClipCounts reports the last histogram buckets to expose ceiling
// artifacts in the months-since-anchor curve.
type ClipCounts struct {
	Month35 int `json:"month35"`
	Month36 int `json:"month36"`
	Month37 int `json:"month37"`
}

// QualityRow is one presentational row of the data-quality table.
type QualityRow struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
	Status string `json:"status"`
}

// ViewDataQuality holds the audit metrics over the population.
type ViewDataQuality struct {
	TotalCustomers             int              `json:"totalCustomers"`
	AvgTradelinesPerCustomer   float64          `json:"avgTradelinesPerCustomer"`
	AnchorSummary              AnchorSummary    `json:"anchorSummary"`
	Month0PctOnDemandCurve     float64          `json:"month0PctOnDemandCurve"`
	PreExistingPLPct           float64          `json:"preExistingPLPct"`
	BureauFreshnessDays        int              `json:"bureauFreshnessDays"`
	BureauFreshPctUnder90Days  float64          `json:"bureauFreshPctUnder90Days"`
	RepaymentBucketConsistency ConsistencyCheck `json:"repaymentBucketConsistency"`
	Month36Spike               ClipCounts       `json:"month36Spike"`
	Table                      []QualityRow     `json:"table"`
}

// ViewSet is the complete set of documents produced by one run.
type ViewSet struct {
	Overview     ViewOverview
	DataQuality  ViewDataQuality
	Population   ViewPopulation
	Behaviour    ViewBehaviour
	Risk         ViewRisk
	Timing       ViewTiming
	Monetisation ViewMonetisation
	Outreach     ViewOutreach
}

// NamedView pairs a document with its feed name.
type NamedView struct {
	Name string
	Doc  any
}

// Named returns the documents in their fixed emission order.
func (v *ViewSet) Named() []NamedView {
	return []NamedView{
		{Name: "overview", Doc: v.Overview},
		{Name: "data_quality", Doc: v.DataQuality},
		{Name: "population", Doc: v.Population},
		{Name: "behaviour", Doc: v.Behaviour},
		{Name: "risk", Doc: v.Risk},
		{Name: "timing", Doc: v.Timing},
		{Name: "monetisation", Doc: v.Monetisation},
		{Name: "outreach", Doc: v.Outreach},
	}
}

// ViewNames lists the feed names in emission order.
func ViewNames() []string {
	return []string{
		"overview", "data_quality", "population", "behaviour",
		"risk", "timing", "monetisation", "outreach",
	}
}
