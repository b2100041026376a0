package transport

import "dealflow_backend/internal/scoring"

// SearchCriteria is the caller-facing search input. Zero-valued fields are
// omitted from the upstream request body.
type SearchCriteria struct {
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Zip          string `json:"zip,omitempty"`
	County       string `json:"county,omitempty"`
	PropertyType string `json:"property_type,omitempty"`
	Size         int    `json:"size,omitempty"`
	ResultIndex  int    `json:"resultIndex,omitempty"`

	// Count and IDsOnly select the free request shapes against the same
	// endpoint; neither consumes metered record credits.
	Count   bool `json:"count,omitempty"`
	IDsOnly bool `json:"ids_only,omitempty"`
}

// Address is the upstream address object, shared by both payload shapes.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// SearchResult is the shallow payload shape returned by the search endpoint.
// All distress flags live at the top level.
type SearchResult struct {
	ID           FlexString `json:"id"`
	Address      *Address   `json:"address"`
	OwnerName    string     `json:"owner1FullName"`
	PropertyType string     `json:"propertyType"`

	Bedrooms   FlexNumber `json:"bedrooms"`
	Bathrooms  FlexNumber `json:"bathrooms"`
	SquareFeet FlexNumber `json:"squareFeet"`
	YearBuilt  FlexNumber `json:"yearBuilt"`
	LotSqft    FlexNumber `json:"lotSquareFeet"`

	EstimatedValue  FlexNumber `json:"estimatedValue"`
	EstimatedEquity FlexNumber `json:"estimatedEquity"`
	EquityPercent   FlexNumber `json:"equityPercent"`
	LastSaleDate    string     `json:"lastSaleDate"`
	LastSaleAmount  FlexNumber `json:"lastSaleAmount"`

	PreForeclosure          FlexBool   `json:"preForeclosure"`
	Auction                 FlexBool   `json:"auction"`
	Foreclosure             FlexBool   `json:"foreclosure"`
	Vacant                  FlexBool   `json:"vacant"`
	AbsenteeOwner           FlexBool   `json:"absenteeOwner"`
	OutOfStateAbsenteeOwner FlexBool   `json:"outOfStateAbsenteeOwner"`
	InStateAbsenteeOwner    FlexBool   `json:"inStateAbsenteeOwner"`
	Inherited               FlexBool   `json:"inherited"`
	Death                   FlexBool   `json:"death"`
	HighEquity              FlexBool   `json:"highEquity"`
	FreeClear               FlexBool   `json:"freeClear"`
	CorporateOwned          FlexBool   `json:"corporateOwned"`
	TaxLien                 FlexBool   `json:"taxLien"`
	Judgment                FlexBool   `json:"judgment"`
	REO                     FlexBool   `json:"reo"`
	NegativeEquity          FlexBool   `json:"negativeEquity"`
	PriceReduced            FlexBool   `json:"priceReduced"`
	PrivateLender           FlexBool   `json:"privateLender"`
	AdjustableRate          FlexBool   `json:"adjustableRate"`
	YearsOwned              FlexNumber `json:"yearsOwned"`
	TotalPropertiesOwned    FlexNumber `json:"totalPropertiesOwned"`
	DocumentType            string     `json:"documentType"`
}

// DetailResult is the rich payload shape returned by the detail endpoint.
// It carries the same top-level flags as SearchResult plus nested ownership
// and foreclosure sub-objects, any of which may be absent.
type DetailResult struct {
	ID FlexString `json:"id"`

	PropertyInfo    *PropertyInfo    `json:"propertyInfo"`
	OwnerInfo       *OwnerInfo       `json:"ownerInfo"`
	AuctionInfo     *AuctionInfo     `json:"auctionInfo"`
	ForeclosureInfo *ForeclosureInfo `json:"foreclosureInfo"`
	MortgageInfo    *MortgageInfo    `json:"mortgageInfo"`
	LastSale        *LastSale        `json:"lastSale"`

	EstimatedValue  FlexNumber `json:"estimatedValue"`
	EstimatedEquity FlexNumber `json:"estimatedEquity"`
	EquityPercent   FlexNumber `json:"equityPercent"`

	PreForeclosure          FlexBool   `json:"preForeclosure"`
	Auction                 FlexBool   `json:"auction"`
	Foreclosure             FlexBool   `json:"foreclosure"`
	Vacant                  FlexBool   `json:"vacant"`
	AbsenteeOwner           FlexBool   `json:"absenteeOwner"`
	OutOfStateAbsenteeOwner FlexBool   `json:"outOfStateAbsenteeOwner"`
	InStateAbsenteeOwner    FlexBool   `json:"inStateAbsenteeOwner"`
	Inherited               FlexBool   `json:"inherited"`
	Death                   FlexBool   `json:"death"`
	HighEquity              FlexBool   `json:"highEquity"`
	FreeClear               FlexBool   `json:"freeClear"`
	CorporateOwned          FlexBool   `json:"corporateOwned"`
	TaxLien                 FlexBool   `json:"taxLien"`
	Judgment                FlexBool   `json:"judgment"`
	REO                     FlexBool   `json:"reo"`
	NegativeEquity          FlexBool   `json:"negativeEquity"`
	PriceReduced            FlexBool   `json:"priceReduced"`
	PrivateLender           FlexBool   `json:"privateLender"`
	AdjustableRate          FlexBool   `json:"adjustableRate"`
	TotalPropertiesOwned    FlexNumber `json:"totalPropertiesOwned"`
}

// PropertyInfo carries structural characteristics on the detail shape.
type PropertyInfo struct {
	Address      *Address   `json:"address"`
	PropertyUse  string     `json:"propertyUse"`
	PropertyType string     `json:"propertyType"`
	Bedrooms     FlexNumber `json:"bedrooms"`
	Bathrooms    FlexNumber `json:"bathrooms"`
	SquareFeet   FlexNumber `json:"livingSquareFeet"`
	LotSqft      FlexNumber `json:"lotSquareFeet"`
	YearBuilt    FlexNumber `json:"yearBuilt"`
}

// OwnerInfo carries ownership data on the detail shape.
type OwnerInfo struct {
	Owner1FullName       string     `json:"owner1FullName"`
	Owner2FullName       string     `json:"owner2FullName"`
	MailAddress          *Address   `json:"mailAddress"`
	Absentee             FlexBool   `json:"absenteeOwner"`
	OwnershipLengthYears FlexNumber `json:"ownershipLength"`
	PropertiesOwned      FlexNumber `json:"propertiesOwned"`
	CorporateOwned       FlexBool   `json:"corporateOwned"`
	Inherited            FlexBool   `json:"inherited"`
	Deceased             FlexBool   `json:"death"`
}

// AuctionInfo carries scheduled-auction data on the detail shape.
type AuctionInfo struct {
	Active      FlexBool   `json:"active"`
	AuctionDate string     `json:"auctionDate"`
	OpeningBid  FlexNumber `json:"openingBid"`
}

// ForeclosureInfo carries foreclosure-filing data on the detail shape.
type ForeclosureInfo struct {
	Active        FlexBool   `json:"active"`
	DocumentType  string     `json:"documentType"`
	RecordingDate string     `json:"recordingDate"`
	DefaultAmount FlexNumber `json:"defaultAmount"`
}

// MortgageInfo carries open-lien data on the detail shape.
type MortgageInfo struct {
	LenderName     string     `json:"lenderName"`
	LenderType     string     `json:"lenderType"`
	Amount         FlexNumber `json:"amount"`
	AdjustableRate FlexBool   `json:"adjustableRate"`
}

// LastSale carries the most recent recorded transfer on the detail shape.
type LastSale struct {
	SaleDate     string     `json:"saleDate"`
	SaleAmount   FlexNumber `json:"saleAmount"`
	DocumentType string     `json:"documentType"`
}

// DistressFlags extracts the distress-signal subset from the search shape.
func (r *SearchResult) DistressFlags() scoring.Flags {
	if r == nil {
		return scoring.Flags{}
	}
	return scoring.Flags{
		PreForeclosure:          r.PreForeclosure.Bool(),
		Auction:                 r.Auction.Bool(),
		Foreclosure:             r.Foreclosure.Bool(),
		Vacant:                  r.Vacant.Bool(),
		AbsenteeOwner:           r.AbsenteeOwner.Bool(),
		OutOfStateAbsenteeOwner: r.OutOfStateAbsenteeOwner.Bool(),
		InStateAbsenteeOwner:    r.InStateAbsenteeOwner.Bool(),
		Inherited:               r.Inherited.Bool(),
		Death:                   r.Death.Bool(),
		HighEquity:              r.HighEquity.Bool(),
		EquityPercent:           r.EquityPercent.Float64Ptr(),
		FreeClear:               r.FreeClear.Bool(),
		CorporateOwned:          r.CorporateOwned.Bool(),
		TaxLien:                 r.TaxLien.Bool(),
		Judgment:                r.Judgment.Bool(),
		REO:                     r.REO.Bool(),
		NegativeEquity:          r.NegativeEquity.Bool(),
		PriceReduced:            r.PriceReduced.Bool(),
		PrivateLender:           r.PrivateLender.Bool(),
		AdjustableRate:          r.AdjustableRate.Bool(),
		YearsOwned:              r.YearsOwned.Float64Ptr(),
		TotalPropertiesOwned:    r.TotalPropertiesOwned.Float64Ptr(),
		DocumentType:            r.DocumentType,
	}
}

// DistressFlags extracts the distress-signal subset from the detail shape,
// folding nested sub-objects into the flags the top level leaves unset.
func (r *DetailResult) DistressFlags() scoring.Flags {
	if r == nil {
		return scoring.Flags{}
	}

	flags := scoring.Flags{
		PreForeclosure:          r.PreForeclosure.Bool(),
		Auction:                 r.Auction.Bool(),
		Foreclosure:             r.Foreclosure.Bool(),
		Vacant:                  r.Vacant.Bool(),
		AbsenteeOwner:           r.AbsenteeOwner.Bool(),
		OutOfStateAbsenteeOwner: r.OutOfStateAbsenteeOwner.Bool(),
		InStateAbsenteeOwner:    r.InStateAbsenteeOwner.Bool(),
		Inherited:               r.Inherited.Bool(),
		Death:                   r.Death.Bool(),
		HighEquity:              r.HighEquity.Bool(),
		EquityPercent:           r.EquityPercent.Float64Ptr(),
		FreeClear:               r.FreeClear.Bool(),
		CorporateOwned:          r.CorporateOwned.Bool(),
		TaxLien:                 r.TaxLien.Bool(),
		Judgment:                r.Judgment.Bool(),
		REO:                     r.REO.Bool(),
		NegativeEquity:          r.NegativeEquity.Bool(),
		PriceReduced:            r.PriceReduced.Bool(),
		PrivateLender:           r.PrivateLender.Bool(),
		AdjustableRate:          r.AdjustableRate.Bool(),
		TotalPropertiesOwned:    r.TotalPropertiesOwned.Float64Ptr(),
	}

	if info := r.AuctionInfo; info != nil && info.Active.Bool() {
		flags.Auction = true
	}
	if info := r.ForeclosureInfo; info != nil {
		if info.Active.Bool() {
			flags.Foreclosure = true
		}
		if flags.DocumentType == "" {
			flags.DocumentType = info.DocumentType
		}
	}
	if info := r.OwnerInfo; info != nil {
		if info.Absentee.Bool() {
			flags.AbsenteeOwner = true
		}
		if info.CorporateOwned.Bool() {
			flags.CorporateOwned = true
		}
		if info.Inherited.Bool() {
			flags.Inherited = true
		}
		if info.Deceased.Bool() {
			flags.Death = true
		}
		if flags.YearsOwned == nil {
			flags.YearsOwned = info.OwnershipLengthYears.Float64Ptr()
		}
		if flags.TotalPropertiesOwned == nil {
			flags.TotalPropertiesOwned = info.PropertiesOwned.Float64Ptr()
		}
	}
	if info := r.MortgageInfo; info != nil && info.AdjustableRate.Bool() {
		flags.AdjustableRate = true
	}
	if sale := r.LastSale; sale != nil && flags.DocumentType == "" {
		flags.DocumentType = sale.DocumentType
	}

	return flags
}
