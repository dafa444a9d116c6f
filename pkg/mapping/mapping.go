package mapping

import (
	"time"

	"github.com/tazdani/wallet-platform/pkg/api"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// ToApiWallet converts a domain Wallet model to an API Wallet model.
func ToApiWallet(wallet *models.Wallet) *api.Wallet {
	return &api.Wallet{
		Id:           wallet.Id,
		OwnerType:    string(wallet.OwnerType),
		OwnerId:      wallet.OwnerId,
		Balance:      wallet.Balance,
		Currency:     wallet.Currency,
		DailyLimit:   wallet.DailyLimit,
		MonthlyLimit: wallet.MonthlyLimit,
		IsActive:     wallet.IsActive,
		Version:      wallet.Version,
		LastActivity: wallet.LastActivity,
		CreatedAt:    wallet.CreatedAt,
	}
}

// ToDomainNewWallet converts an API NewWallet request to a domain Wallet.
// New wallets start empty, active, and unversioned writes start at 1.
func ToDomainNewWallet(newWallet *api.NewWallet) *models.Wallet {
	wallet := &models.Wallet{
		OwnerType: models.OwnerType(newWallet.OwnerType),
		OwnerId:   newWallet.OwnerId,
		Balance:   0,
		Currency:  models.DefaultCurrency,
		IsActive:  true,
		Version:   1,
	}
	if newWallet.DailyLimit != nil {
		wallet.DailyLimit = *newWallet.DailyLimit
	}
	if newWallet.MonthlyLimit != nil {
		wallet.MonthlyLimit = *newWallet.MonthlyLimit
	}
	return wallet
}

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:               tx.Id,
		Type:             string(tx.Type),
		Amount:           tx.Amount,
		Fee:              tx.Fee,
		Currency:         tx.Currency,
		SenderWalletId:   tx.SenderWalletId,
		ReceiverWalletId: tx.ReceiverWalletId,
		AgentId:          tx.AgentId,
		PaymentLinkId:    tx.PaymentLinkId,
		Status:           string(tx.Status),
		Reference:        tx.Reference,
		Metadata:         tx.Metadata,
		CreatedAt:        tx.CreatedAt,
	}
}

// ToApiMovementResult converts a storage MovementResult to its API model.
func ToApiMovementResult(result *storage.MovementResult) *api.MovementResult {
	return &api.MovementResult{
		Transaction:          ToApiTransaction(result.Transaction),
		SenderBalanceAfter:   result.SenderBalanceAfter,
		ReceiverBalanceAfter: result.ReceiverBalanceAfter,
		Replayed:             result.Replayed,
	}
}

// ToApiLedgerEntry converts a domain LedgerEntry to an API LedgerEntry.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	apiEntry := &api.LedgerEntry{
		EntryId:       entry.EntryId,
		TransactionId: entry.TransactionId,
		AccountId:     entry.AccountId,
		Description:   entry.Description,
		Timestamp:     entry.Timestamp,
	}
	if entry.Debit != 0 {
		apiEntry.Debit = &entry.Debit
	}
	if entry.Credit != 0 {
		apiEntry.Credit = &entry.Credit
	}
	return apiEntry
}

// ToApiPaymentLink converts a domain PaymentLink to an API PaymentLink.
// The PIN gate is deliberately not mapped.
func ToApiPaymentLink(link *models.PaymentLink) *api.PaymentLink {
	return &api.PaymentLink{
		Id:           link.Id,
		LinkId:       link.LinkId,
		MerchantId:   link.MerchantId,
		Amount:       link.Amount,
		Currency:     link.Currency,
		Description:  link.Description,
		Status:       string(link.Status),
		PinProtected: link.Pin != "",
		Expiry:       link.Expiry,
		CreatedAt:    link.CreatedAt,
	}
}

// ToDomainNewPaymentLink converts an API NewPaymentLink request to a domain
// PaymentLink. Ids and timestamps are filled in by the storage layer.
func ToDomainNewPaymentLink(newLink *api.NewPaymentLink) *models.PaymentLink {
	return &models.PaymentLink{
		MerchantId:  newLink.MerchantId,
		Amount:      newLink.Amount,
		Currency:    models.DefaultCurrency,
		Description: newLink.Description,
		Pin:         newLink.Pin,
		Status:      models.LinkActive,
		Expiry:      newLink.Expiry,
	}
}

// ToApiProfile converts a domain Profile to an API Profile.
func ToApiProfile(profile *models.Profile) *api.Profile {
	return &api.Profile{
		Id:           profile.Id,
		Type:         string(profile.Type),
		DisplayName:  profile.DisplayName,
		Phone:        profile.Phone,
		Email:        profile.Email,
		WalletId:     profile.WalletId,
		WalletStatus: profile.WalletStatus,
		CreatedAt:    profile.CreatedAt,
	}
}

// ToDomainNewProfile converts an API NewProfile request to a domain Profile.
func ToDomainNewProfile(newProfile *api.NewProfile) *models.Profile {
	profile := &models.Profile{
		Type:         models.OwnerType(newProfile.Type),
		DisplayName:  newProfile.DisplayName,
		Phone:        newProfile.Phone,
		WalletStatus: models.WalletStatusActive,
		CreatedAt:    time.Now(),
	}
	if newProfile.Email != nil {
		profile.Email = string(*newProfile.Email)
	}
	return profile
}
