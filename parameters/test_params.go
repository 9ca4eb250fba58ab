package parameters

var (
	// TestParametersLiteral is a set of small parameter sets used by the tests of the module.
	TestParametersLiteral = []ParametersLiteral{
		{
			Degree:           16,
			PlaintextModulus: 65537,
			Moduli:           []uint64{0x7fff80001},
			Variance:         10,
		},
		{
			Degree:           64,
			PlaintextModulus: 257,
			Moduli:           []uint64{0x200000440001, 0x7fff80001, 0x800280001},
			Variance:         10,
		},
		{
			Degree:           128,
			PlaintextModulus: 1024,
			Moduli:           []uint64{0x7fff80001, 0x800280001},
			Variance:         3,
		},
	}
)
