package dto

type PropertyDetails struct {
	Address       string   `json:"address" validate:"required"`
	PropertyType  string   `json:"propertyType" validate:"required"`
	Price         string   `json:"price" validate:"required"`
	Bedrooms      *int     `json:"bedrooms,omitempty" validate:"omitempty,gte=0"`
	Bathrooms     *float64 `json:"bathrooms,omitempty" validate:"omitempty,gte=0"`
	SquareFootage *int     `json:"squareFootage,omitempty" validate:"omitempty,gte=0"`
	YearBuilt     *int     `json:"yearBuilt,omitempty" validate:"omitempty,gte=1600"`
	LotSize       string   `json:"lotSize,omitempty"`
}

type BuyerInfo struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone,omitempty"`
	CurrentAddress string `json:"currentAddress,omitempty"`
}

type OfferTerms struct {
	OfferPrice      string   `json:"offerPrice" validate:"required"`
	EarnestMoney    string   `json:"earnestMoney" validate:"required"`
	ClosingDate     string   `json:"closingDate" validate:"required"`
	Contingencies   []string `json:"contingencies" validate:"required,min=1,dive,required"`
	AdditionalTerms string   `json:"additionalTerms,omitempty"`
}

type ContractInput struct {
	PropertyDetails PropertyDetails `json:"propertyDetails"`
	BuyerInfo       BuyerInfo       `json:"buyerInfo"`
	OfferTerms      OfferTerms      `json:"offerTerms"`
	Jurisdiction    string          `json:"jurisdiction" validate:"required"`
}

type ContractSection struct {
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content" validate:"required"`
	IsRequired bool   `json:"isRequired"`
}

type ContractOutputMetadata struct {
	Type         string `json:"type" validate:"required"`
	Jurisdiction string `json:"jurisdiction" validate:"required"`
	LastUpdated  string `json:"lastUpdated"` // overwritten after validation
	Version      string `json:"version" validate:"required"`
}

// ContractOutput is a generated contract draft.
type ContractOutput struct {
	Title    string                 `json:"title" validate:"required"`
	Sections []ContractSection      `json:"sections" validate:"required,min=1,dive"`
	Metadata ContractOutputMetadata `json:"metadata"`
	Summary  string                 `json:"summary" validate:"required"`
	Warnings []string               `json:"warnings,omitempty"`
}

type Party struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required"`
}

type MetadataPropertyDetails struct {
	Address      string `json:"address" validate:"required"`
	Price        string `json:"price,omitempty"`
	PropertyType string `json:"propertyType" validate:"required"`
}

type ContractDates struct {
	EffectiveDate  string `json:"effectiveDate,omitempty"`
	ClosingDate    string `json:"closingDate,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty"`
}

// ContractMetadata is what metadata extraction pulls out of an uploaded contract.
type ContractMetadata struct {
	Title           string                  `json:"title" validate:"required"`
	Type            string                  `json:"type" validate:"required"`
	Parties         []Party                 `json:"parties" validate:"dive"`
	PropertyDetails MetadataPropertyDetails `json:"propertyDetails"`
	Dates           ContractDates           `json:"dates"`
	KeyTerms        []string                `json:"keyTerms"`
}
