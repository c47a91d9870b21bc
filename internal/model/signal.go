package model

// SignalLabel is the discrete trading recommendation.
type SignalLabel string

const (
	SignalStrongBuy  SignalLabel = "STRONG BUY"
	SignalBuy        SignalLabel = "BUY"
	SignalHold       SignalLabel = "HOLD"
	SignalSell       SignalLabel = "SELL"
	SignalStrongSell SignalLabel = "STRONG SELL"
)

// SignalResult is the output of the signal classifier.
type SignalResult struct {
	Label       SignalLabel
	Score       int
	Strength    float64 // 0 ~ 100
	RSI         *float64
	PriceVsMA20 *float64 // percent
}

// NeutralSignal is the degenerate result used when no signal can be computed.
func NeutralSignal() SignalResult {
	return SignalResult{Label: SignalHold}
}
