// Package finance provides the normal distribution helper and the
// Black-Scholes put pricing kernel, in a sequential and a data-parallel
// variant. The kernel combines each call value into a put as
// call - futureValue + spot; Params.ParityPut gives the parity put.
//
// Each put price depends only on its own strike and the four scalar
// parameters, so any partitioning of the strike index range yields the
// same prices as a sequential loop.
package finance

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/exascience/parlab"
	"github.com/exascience/parlab/parallel"
	"github.com/exascience/parlab/sequential"
)

// Params holds the scalar inputs shared by every strike of a pricing call.
type Params struct {
	Spot       float64 // price of the underlying
	Rate       float64 // continuously compounded risk-free rate
	Volatility float64 // annualised volatility
	Time       float64 // time to expiry in years
}

// quote holds the intermediate terms for a single strike.
type quote struct {
	call        float64
	futureValue float64
}

func (p Params) quote(strike float64) quote {
	den := p.Volatility * math.Sqrt(p.Time)
	d1 := (math.Log(p.Spot/strike) + (p.Rate+0.5*p.Volatility*p.Volatility)*p.Time) / den
	d2 := d1 - den
	fv := strike * math.Exp(-p.Rate*p.Time)
	return quote{
		call:        p.Spot*NormCDF(d1) - fv*NormCDF(d2),
		futureValue: fv,
	}
}

// Call returns the Black-Scholes value of a European call at the given
// strike.
func (p Params) Call(strike float64) float64 {
	return p.quote(strike).call
}

// Put returns the put value of the pricing kernel at the given strike,
// combined from the call value as call - futureValue + spot. This is the
// combination PutPrices and PutPricesParallel report; it differs from the
// arbitrage-free put, which ParityPut returns.
//
// Non-positive strikes or times are not rejected; they yield NaN or
// infinite values.
func (p Params) Put(strike float64) float64 {
	q := p.quote(strike)
	return q.call - q.futureValue + p.Spot
}

// ParityPut returns the Black-Scholes value of a European put at the given
// strike, derived from the call value by put-call parity:
// call - spot + futureValue.
func (p Params) ParityPut(strike float64) float64 {
	q := p.quote(strike)
	return q.call - p.Spot + q.futureValue
}

// PutPricesWith prices every strike with the given Ranger, using Put. The result slice
// is allocated at full length before the ranger runs, and each batch only
// writes the indices of its own range.
func PutPricesWith(ranger parlab.Ranger, p Params, strikes []float64) []float64 {
	puts := make([]float64, len(strikes))
	ranger(0, len(strikes), 0, func(low, high int) {
		for i := low; i < high; i++ {
			puts[i] = p.Put(strikes[i])
		}
	})
	return puts
}

// PutPrices returns the put values for all strikes, computed sequentially.
func PutPrices(spot float64, strikes []float64, rate, volatility, time float64) []float64 {
	return PutPricesWith(sequential.Range, Params{spot, rate, volatility, time}, strikes)
}

// PutPricesParallel returns the same values as PutPrices, with the strike
// range divided into batches that are priced in parallel.
func PutPricesParallel(spot float64, strikes []float64, rate, volatility, time float64) []float64 {
	return PutPricesWith(parallel.Range, Params{spot, rate, volatility, time}, strikes)
}

// Checksum sums the prices sequentially.
func Checksum(prices []float64) float64 {
	return floats.Sum(prices)
}

// ParallelChecksum sums the prices with a parallel reduction. The
// summation order differs from Checksum, so the two may disagree in the
// last bits.
func ParallelChecksum(prices []float64) float64 {
	return parallel.Float64Sum(0, len(prices), 0, func(low, high int) float64 {
		return floats.Sum(prices[low:high])
	})
}

// Strikes returns n strikes evenly spaced from low to high inclusive.
func Strikes(n int, low, high float64) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{low}
	}
	return floats.Span(make([]float64, n), low, high)
}
