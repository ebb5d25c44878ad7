package models

// Bucket is the coarse delinquency classification, A best to D worst.
type Bucket string

const (
	BucketA Bucket = "A"
	BucketB Bucket = "B"
	BucketC Bucket = "C"
	BucketD Bucket = "D"
)

// AffordabilityTier segments customers by credit exposure ceiling.
type AffordabilityTier string

const (
	TierMicro    AffordabilityTier = "micro"
	TierMid      AffordabilityTier = "mid"
	TierMass     AffordabilityTier = "mass"
	TierAffluent AffordabilityTier = "affluent"
)

// LenderType tags the customer's lender footprint.
type LenderType string

const (
	LenderNBF   LenderType = "NBF"
	LenderPVT   LenderType = "PVT"
	LenderPUB   LenderType = "PUB"
	LenderMixed LenderType = "Mixed"
)

// ProductMix tags the customer's anchor/target product holdings. The
// labels keep the dashboard's historical keys (the anchor product is
// the vehicle loan, the target product the personal loan).
type ProductMix string

const (
	MixAnchorAndTarget ProductMix = "vehicle_and_pl"
	MixAnchorOnly      ProductMix = "vehicle_only"
	MixOther           ProductMix = "other"
)

// TimingFlag classifies how far a customer is past their anchor event.
type TimingFlag string

const (
	TimingGoldenWindow TimingFlag = "golden_window"
	TimingMilestone    TimingFlag = "milestone"
	TimingEarly        TimingFlag = "early"
	TimingDormant      TimingFlag = "dormant"
)

// Classification is the derived per-customer view, computed once from
// the finalized aggregate and never mutated by later stages.
type Classification struct {
	Bucket        Bucket
	RiskScore     int // clamped to [0,100]
	Affordability AffordabilityTier
	LenderType    LenderType
	ProductMix    ProductMix
}
