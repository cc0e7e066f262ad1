package billing

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrInsufficientPackageBalance is surfaced to the caller when a package
// cannot cover a charge. Whether to fall back to wallet charging is the
// billing pipeline's decision; this package never does it silently.
var ErrInsufficientPackageBalance = errors.New("insufficient package balance")

// ResourcePackageRef names a prepaid package to draw a charge from
// instead of the user's wallet quota.
type ResourcePackageRef struct {
	PackageId   int64  `json:"package_id"`
	ServiceType string `json:"service_type"`
}

// PackageLedger is the resource-package collaborator. Balance reads and
// deduct intents are synchronous; latency and at-most-once application
// are the implementation's concern (keyed by the event's request id).
type PackageLedger interface {
	Balance(ctx context.Context, packageId int64) (decimal.Decimal, error)
	Deduct(ctx context.Context, packageId int64, eventId string, amount decimal.Decimal) error
}

// ChargeWithPackage computes the charge exactly like ComputeCharge and
// routes the deduction to the named package instead of the wallet. The
// returned result still reports the nominal amount consumed, so display
// surfaces render package-funded requests like any other.
func ChargeWithPackage(ctx context.Context, ledger PackageLedger, ref ResourcePackageRef, event *UsageEvent, price PriceData, extras []ExtraBillingItem) (*ChargeResult, error) {
	result, err := ComputeCharge(event, price, extras)
	if err != nil {
		return nil, err
	}

	balance, err := ledger.Balance(ctx, ref.PackageId)
	if err != nil {
		return nil, errors.Wrapf(err, "read balance of package %d", ref.PackageId)
	}
	if balance.LessThan(result.TotalQuota) {
		return result, errors.Wrapf(ErrInsufficientPackageBalance,
			"package %d balance %s < charge %s", ref.PackageId, balance.String(), result.TotalQuota.String())
	}

	if err := ledger.Deduct(ctx, ref.PackageId, event.RequestId, result.TotalQuota); err != nil {
		if errors.Is(err, ErrInsufficientPackageBalance) {
			// Lost the race between read and deduct; same contract.
			return result, err
		}
		return nil, errors.Wrapf(err, "deduct from package %d", ref.PackageId)
	}
	return result, nil
}
