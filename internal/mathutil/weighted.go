package mathutil

// Weighted pairs a value with the weight it carries in a weighted mean.
type Weighted struct {
	Value  float64
	Weight float64
}

// WeightedMean returns sum(value*weight) / sum(weight) over the points.
// A zero total weight yields 0 rather than dividing by zero.
func WeightedMean(points []Weighted) float64 {
	var sum, totalWeight float64
	for _, p := range points {
		sum += p.Value * p.Weight
		totalWeight += p.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return sum / totalWeight
}
