package planner

import (
	"fmt"
	"math/big"

	"github.com/ggonzalez94/yield-cli/internal/registry"
)

// ValidationStatus is the closed set of validation outcomes. Validation
// failures are results, not process errors: callers render them and let the
// user adjust amount or account before re-planning.
type ValidationStatus string

const (
	StatusOK                 ValidationStatus = "OK"
	StatusNotEnoughFee       ValidationStatus = "NOT_ENOUGH_FEE"
	StatusNotEnoughMinAmount ValidationStatus = "NOT_ENOUGH_MIN_AMOUNT"
	StatusNotSupported       ValidationStatus = "NOT_SUPPORTED"
)

type ValidationResult struct {
	OK         bool             `json:"ok"`
	Status     ValidationStatus `json:"status"`
	FailedStep *Step            `json:"failed_step,omitempty"`
	Message    string           `json:"message,omitempty"`
}

func failed(status ValidationStatus, step Step, message string) ValidationResult {
	s := step
	return ValidationResult{OK: false, Status: status, FailedStep: &s, Message: message}
}

// Validate runs the affordability and liquidity checks against a generated
// path, in strict order, stopping at the first violation. It performs no
// I/O: every input is a pre-fetched snapshot, so identical inputs always
// produce identical results.
func Validate(path Path, amount *big.Int, balances BalanceSnapshot, pool registry.Pool, reg *registry.Registry) (ValidationResult, error) {
	firstExec, ok := path.FirstExecutable()
	if !ok {
		return ValidationResult{OK: false, Status: StatusNotSupported, Message: "path has no executable steps"}, nil
	}
	submit, ok := path.SubmitStep()
	if !ok {
		return ValidationResult{OK: false, Status: StatusNotSupported, Message: "path has no submit step"}, nil
	}

	inputSlug := pool.PrimaryInput()
	inputBalance, err := balances.Free(inputSlug)
	if err != nil {
		return ValidationResult{}, err
	}

	// Check 1: a cross-chain top-up must leave the alternate asset above its
	// existential deposit after the transfer amount and its fee leave.
	if firstExec.Type == StepCrossChainTransfer && pool.PrimaryAltInput() != "" {
		altSlug := pool.PrimaryAltInput()
		altBalance, err := balances.Free(altSlug)
		if err != nil {
			return ValidationResult{}, err
		}
		altAsset, err := reg.Asset(altSlug)
		if err != nil {
			return ValidationResult{}, err
		}
		altMin, ok := new(big.Int).SetString(defaultZero(altAsset.MinAmount), 10)
		if !ok {
			altMin = big.NewInt(0)
		}

		missing := new(big.Int).Sub(amount, inputBalance)
		transferFee := feeAmountForStep(path, firstExec.ID)
		outgoing := new(big.Int).Add(missing, transferFee)

		remainder := new(big.Int).Sub(altBalance, outgoing)
		if remainder.Cmp(altMin) < 0 {
			return failed(StatusNotEnoughMinAmount, firstExec,
				fmt.Sprintf("transferring %s %s would leave less than the minimum of %s", outgoing, altSlug, altMin)), nil
		}
	}

	// Check 2: fee affordability at the submit step.
	feeRecord, hasFee := path.FeeForStep(submit.ID)
	if !hasFee {
		return failed(StatusNotEnoughFee, submit, "no viable fee asset recorded for the submit step"), nil
	}
	feeAmount, ok := new(big.Int).SetString(defaultZero(feeRecord.Amount), 10)
	if !ok {
		feeAmount = big.NewInt(0)
	}
	minJoin, ok := new(big.Int).SetString(defaultZero(pool.MinJoin()), 10)
	if !ok {
		minJoin = big.NewInt(0)
	}

	if feeRecord.Slug == pool.DefaultFeeAsset() {
		feeBalance, err := balances.Free(feeRecord.Slug)
		if err != nil {
			return ValidationResult{}, err
		}
		feeAsset, err := reg.Asset(feeRecord.Slug)
		if err != nil {
			return ValidationResult{}, err
		}
		feeMin, ok := new(big.Int).SetString(defaultZero(feeAsset.MinAmount), 10)
		if !ok {
			feeMin = big.NewInt(0)
		}
		if new(big.Int).Sub(feeBalance, feeAmount).Cmp(feeMin) < 0 {
			return failed(StatusNotEnoughFee, submit,
				fmt.Sprintf("paying %s %s would leave the fee asset below its minimum of %s", feeAmount, feeRecord.Slug, feeMin)), nil
		}

		// Check 3: the requested amount still meets the pool's minimum join.
		if amount.Cmp(minJoin) < 0 {
			return failed(StatusNotEnoughMinAmount, submit,
				fmt.Sprintf("amount %s is below the pool minimum of %s", amount, minJoin)), nil
		}
	} else {
		// Fee paid in kind: the amount net of fee must still meet the
		// minimum join.
		if new(big.Int).Sub(amount, feeAmount).Cmp(minJoin) < 0 {
			return failed(StatusNotEnoughMinAmount, submit,
				fmt.Sprintf("amount %s net of fee %s is below the pool minimum of %s", amount, feeAmount, minJoin)), nil
		}
	}

	return ValidationResult{OK: true, Status: StatusOK}, nil
}

func feeAmountForStep(path Path, stepID int) *big.Int {
	record, ok := path.FeeForStep(stepID)
	if !ok {
		return big.NewInt(0)
	}
	amount, ok := new(big.Int).SetString(defaultZero(record.Amount), 10)
	if !ok {
		return big.NewInt(0)
	}
	return amount
}

func defaultZero(v string) string {
	if v == "" {
		return "0"
	}
	return v
}
