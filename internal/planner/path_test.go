package planner

import "testing"

func TestNewPathShapeChecks(t *testing.T) {
	mint := Step{ID: 1, Name: "Mint LDOT", Type: StepMintDerivative}

	cases := []struct {
		name  string
		steps []Step
		fees  []FeeRecord
		ok    bool
	}{
		{name: "valid", steps: []Step{bootstrapStep(), mint}, ok: true},
		{name: "empty", steps: nil},
		{name: "missing bootstrap", steps: []Step{mint}},
		{
			name:  "gapped ids",
			steps: []Step{bootstrapStep(), {ID: 2, Name: "Mint LDOT", Type: StepMintDerivative}},
		},
		{
			name:  "misordered ids",
			steps: []Step{bootstrapStep(), {ID: 2, Type: StepMintDerivative}, {ID: 1, Type: StepCrossChainTransfer}},
		},
		{
			name:  "fee for unknown step",
			steps: []Step{bootstrapStep(), mint},
			fees:  []FeeRecord{{StepID: 5, Slug: "acala-NATIVE-ACA", Amount: "1"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPath("LDOT___acala_liquid_staking", tc.steps, tc.fees)
			if tc.ok && err != nil {
				t.Fatalf("NewPath failed: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected NewPath to reject the shape")
			}
		})
	}
}

func TestSubmitStepSkipsTransfer(t *testing.T) {
	transfer := Step{ID: 1, Name: "Transfer DOT", Type: StepCrossChainTransfer}
	mint := Step{ID: 2, Name: "Mint LDOT", Type: StepMintDerivative}
	path, err := NewPath("LDOT___acala_liquid_staking", []Step{bootstrapStep(), transfer, mint}, nil)
	if err != nil {
		t.Fatalf("NewPath failed: %v", err)
	}

	first, ok := path.FirstExecutable()
	if !ok || first.Type != StepCrossChainTransfer {
		t.Fatalf("first executable = %+v, want the transfer", first)
	}
	submit, ok := path.SubmitStep()
	if !ok || submit.Type != StepMintDerivative {
		t.Fatalf("submit step = %+v, want the mint", submit)
	}
}

func TestSubmitStepAbsentWhenOnlyTransfers(t *testing.T) {
	transfer := Step{ID: 1, Name: "Transfer DOT", Type: StepCrossChainTransfer}
	path, err := NewPath("LDOT___acala_liquid_staking", []Step{bootstrapStep(), transfer}, nil)
	if err != nil {
		t.Fatalf("NewPath failed: %v", err)
	}
	if _, ok := path.SubmitStep(); ok {
		t.Fatal("transfer-only path must not report a submit step")
	}
}

func TestBalanceSnapshotFree(t *testing.T) {
	snapshot := BalanceSnapshot{"polkadot-NATIVE-DOT": "10000000000", "acala-NATIVE-ACA": ""}
	if v, err := snapshot.Free("polkadot-NATIVE-DOT"); err != nil || v.String() != "10000000000" {
		t.Fatalf("Free = %v, %v", v, err)
	}
	if v, err := snapshot.Free("acala-NATIVE-ACA"); err != nil || v.Sign() != 0 {
		t.Fatalf("empty entry should read as zero, got %v, %v", v, err)
	}
	if v, err := snapshot.Free("missing-NATIVE-X"); err != nil || v.Sign() != 0 {
		t.Fatalf("missing entry should read as zero, got %v, %v", v, err)
	}
	if _, err := snapshot.Free("bad"); err != nil {
		t.Fatalf("absent slug never errors, got %v", err)
	}
	snapshot["polkadot-NATIVE-DOT"] = "abc"
	if _, err := snapshot.Free("polkadot-NATIVE-DOT"); err == nil {
		t.Fatal("garbage balance should fail")
	}
}
