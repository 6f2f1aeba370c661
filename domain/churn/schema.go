// Package churn defines the Telco customer-churn schema and the fixed set of
// tables and figures a pipeline run produces.
package churn

// Column names of the Telco customer-churn dataset.
const (
	ColCustomerID       = "customerID"
	ColGender           = "gender"
	ColSeniorCitizen    = "SeniorCitizen"
	ColPartner          = "Partner"
	ColDependents       = "Dependents"
	ColTenure           = "tenure"
	ColPhoneService     = "PhoneService"
	ColMultipleLines    = "MultipleLines"
	ColInternetService  = "InternetService"
	ColOnlineSecurity   = "OnlineSecurity"
	ColOnlineBackup     = "OnlineBackup"
	ColDeviceProtection = "DeviceProtection"
	ColTechSupport      = "TechSupport"
	ColStreamingTV      = "StreamingTV"
	ColStreamingMovies  = "StreamingMovies"
	ColContract         = "Contract"
	ColPaperlessBilling = "PaperlessBilling"
	ColPaymentMethod    = "PaymentMethod"
	ColMonthlyCharges   = "MonthlyCharges"
	ColTotalCharges     = "TotalCharges"
	ColChurn            = "Churn"

	// ColChurnNumeric is the derived 0/1 churn indicator used for correlation.
	ColChurnNumeric = "Churn_numeric"
)

// Label values
const (
	Yes = "Yes"
	No  = "No"
)

// RequiredColumns must be present in every input table.
var RequiredColumns = []string{
	ColContract,
	ColInternetService,
	ColPaymentMethod,
	ColStreamingTV,
	ColStreamingMovies,
	ColSeniorCitizen,
	ColChurn,
	ColTenure,
	ColMonthlyCharges,
	ColTotalCharges,
}

// TextColumns are read as strings regardless of content. TotalCharges is
// repaired by the cleaner.
var TextColumns = []string{ColCustomerID, ColTotalCharges}
