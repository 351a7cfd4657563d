package convertible

import "math"

// The contract rules run per node in a fixed order:
//
//	(reset blend, if enabled) -> debt floor -> conversion -> call cap -> put floor
//
// The call cap runs after the conversion rule so it caps the raw conversion
// value, and the put floor runs last so the call cap cannot cap it away. The
// reset blend runs first, on the raw expectation, so the floors still clamp
// the blended result. Each rule is a pure function of the node.

// bondFloorAt is the time-dependent debt floor at layer i.
func bondFloorAt(p ContractParameters, i int) float64 {
	frac := float64(i) / float64(p.Steps)
	switch p.Floor {
	case FloorLegacyRamp:
		return p.PureBondValue * frac
	default:
		// Accretes from the pure bond value today to the redemption price at
		// maturity, mirroring pull-to-par of the debt component.
		return p.PureBondValue + (p.RedemptionPrice-p.PureBondValue)*frac
	}
}

// applyFloor lifts the value to the debt floor. Non-decreasing.
func applyFloor(value, floor float64) float64 {
	return math.Max(value, floor)
}

// applyConversion grants the holder immediate conversion. Non-decreasing.
func applyConversion(value, conversion float64) float64 {
	return math.Max(value, conversion)
}

// applyCallCap caps the value once the stock clears the forced-call trigger:
// the issuer redeems early, so the holder keeps at most the better of
// redemption and immediate conversion. Non-increasing.
func applyCallCap(p ContractParameters, stock, conversion, value float64) float64 {
	if stock < p.CallTriggerPrice {
		return value
	}
	return math.Min(value, math.Max(p.RedemptionPrice, conversion))
}

// applyPutFloor lifts the value to the put price once the stock falls to the
// put trigger: the holder can always sell back. Non-decreasing.
func applyPutFloor(p ContractParameters, stock, value float64) float64 {
	if stock > p.PutTriggerPrice {
		return value
	}
	return math.Max(value, p.PutTriggerPrice)
}

// overlayNode applies the full rule pipeline to one node's raw expectation
// value and returns the adjusted value.
func overlayNode(p ContractParameters, floor, stock, value float64) float64 {
	conversion := stock * p.ConversionRatio()
	if p.Reset != nil {
		value = p.Reset.blend(p, stock, value)
	}
	value = applyFloor(value, floor)
	value = applyConversion(value, conversion)
	value = applyCallCap(p, stock, conversion, value)
	value = applyPutFloor(p, stock, value)
	return value
}
