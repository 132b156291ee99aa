package auth

import "github.com/aifinance/aifinance-backend/internal/domain"

// Flag is a named capability gate. The set is closed: handlers and templates
// reference these constants, never raw strings.
type Flag string

const (
	// Consumer tier one (pro and premium).
	FlagInvestmentTracking Flag = "investment_tracking"
	FlagAIOptimizer        Flag = "ai_optimizer"
	FlagVoiceEntry         Flag = "voice_entry"
	FlagReceiptOCR         Flag = "receipt_ocr"
	FlagBankSync           Flag = "bank_sync"
	FlagGoalAutomation     Flag = "goal_automation"

	// Consumer tier two (premium only).
	FlagCreditMonitoring   Flag = "credit_monitoring"
	FlagCashFlowPrediction Flag = "cash_flow_prediction"
	FlagAdvisorChat        Flag = "advisor_chat"
	FlagCryptoTracking     Flag = "crypto_tracking"
	FlagTaxOptimizer       Flag = "tax_optimizer"
	FlagRealEstateTracking Flag = "real_estate_tracking"

	// Business tier one (pro and enterprise).
	FlagTeamManagement    Flag = "team_management"
	FlagApprovals         Flag = "approvals"
	FlagAdvancedReporting Flag = "advanced_reporting"
	FlagMultiCurrency     Flag = "multi_currency"
	FlagAuditLogs         Flag = "audit_logs"

	// Business tier two (enterprise only).
	FlagAccountingSync     Flag = "accounting_sync"
	FlagChatOpsIntegration Flag = "chatops_integration"
	FlagCustomRoles        Flag = "custom_roles"
	FlagCustomIntegrations Flag = "custom_integrations"
	FlagWhiteLabel         Flag = "white_label"
	FlagAdvancedAnalytics  Flag = "advanced_analytics"
	FlagIntlTransfers      Flag = "international_transfers"

	// Shared by consumer premium and business enterprise.
	FlagPrioritySupport  Flag = "priority_support"
	FlagUnlimitedHistory Flag = "unlimited_history"
)

// Flags maps every known flag to its on/off state for one user.
type Flags map[Flag]bool

var allFlags = []Flag{
	FlagInvestmentTracking, FlagAIOptimizer, FlagVoiceEntry, FlagReceiptOCR,
	FlagBankSync, FlagGoalAutomation, FlagCreditMonitoring,
	FlagCashFlowPrediction, FlagAdvisorChat, FlagCryptoTracking,
	FlagTaxOptimizer, FlagRealEstateTracking, FlagTeamManagement,
	FlagApprovals, FlagAdvancedReporting, FlagMultiCurrency, FlagAuditLogs,
	FlagAccountingSync, FlagChatOpsIntegration, FlagCustomRoles,
	FlagCustomIntegrations, FlagWhiteLabel, FlagAdvancedAnalytics,
	FlagIntlTransfers, FlagPrioritySupport, FlagUnlimitedHistory,
}

var consumerTierOne = []Flag{
	FlagInvestmentTracking, FlagAIOptimizer, FlagVoiceEntry, FlagReceiptOCR,
	FlagBankSync, FlagGoalAutomation,
}

var consumerTierTwo = []Flag{
	FlagCreditMonitoring, FlagCashFlowPrediction, FlagAdvisorChat,
	FlagPrioritySupport, FlagUnlimitedHistory, FlagCryptoTracking,
	FlagTaxOptimizer, FlagRealEstateTracking,
}

var businessTierOne = []Flag{
	FlagTeamManagement, FlagApprovals, FlagAdvancedReporting,
	FlagMultiCurrency, FlagReceiptOCR, FlagBankSync, FlagAuditLogs,
}

var businessTierTwo = []Flag{
	FlagAccountingSync, FlagChatOpsIntegration, FlagCustomRoles,
	FlagCustomIntegrations, FlagWhiteLabel, FlagPrioritySupport,
	FlagUnlimitedHistory, FlagAdvancedAnalytics, FlagIntlTransfers,
}

// ComputeFlags derives the gate table for a user. Pure: the same user yields
// the same table. A nil user gets every flag off.
func ComputeFlags(user *domain.User) Flags {
	out := make(Flags, len(allFlags))
	for _, f := range allFlags {
		out[f] = false
	}
	if user == nil {
		return out
	}
	return computePlanFlags(out, user.AccountType, user.Plan)
}

func computePlanFlags(out Flags, accountType domain.AccountType, plan domain.Plan) Flags {
	switch accountType {
	case domain.AccountConsumer:
		if plan == domain.PlanPro || plan == domain.PlanPremium {
			enable(out, consumerTierOne)
		}
		if plan == domain.PlanPremium {
			enable(out, consumerTierTwo)
		}
	case domain.AccountBusiness:
		if plan == domain.PlanPro || plan == domain.PlanEnterprise {
			enable(out, businessTierOne)
		}
		if plan == domain.PlanEnterprise {
			enable(out, businessTierTwo)
		}
	}
	return out
}

func enable(out Flags, flags []Flag) {
	for _, f := range flags {
		out[f] = true
	}
}
