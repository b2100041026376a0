// Package mapper normalizes raw upstream payload shapes into the canonical
// property record. Both upstream shapes map into the same target so the rest
// of the pipeline never cares which endpoint produced a record.
package mapper

import (
	"strings"

	"dealflow_backend/internal/properties/transport"
	upstream "dealflow_backend/internal/propertydata/transport"
	"dealflow_backend/internal/scoring"
)

// SourcePropertyAPI identifies records acquired from the metered
// property-data API; (source, sourceId) is the upsert identity.
const SourcePropertyAPI = "property_api"

// propertyTypes maps upstream property-type codes onto the canonical set.
// Keys are matched after lowercasing and space normalization.
var propertyTypes = map[string]string{
	"sfr":           "single_family",
	"single family": "single_family",
	"mfr":           "multi_family",
	"multi family":  "multi_family",
	"duplex":        "multi_family",
	"triplex":       "multi_family",
	"quadplex":      "multi_family",
	"condo":         "condo",
	"condominium":   "condo",
	"townhouse":     "townhouse",
	"townhome":      "townhouse",
	"mobile":        "mobile_home",
	"mobile home":   "mobile_home",
	"manufactured":  "mobile_home",
	"land":          "land",
	"vacant land":   "land",
	"lot":           "land",
	"commercial":    "commercial",
	"farm":          "agricultural",
	"agricultural":  "agricultural",
}

// FlagSource is any payload shape that can yield the distress-flag subset.
type FlagSource interface {
	DistressFlags() scoring.Flags
}

// ExtractFlags pulls the distress-flag subset from either payload shape.
func ExtractFlags(src FlagSource) scoring.Flags {
	if src == nil {
		return scoring.Flags{}
	}
	return src.DistressFlags()
}

// NormalizePropertyType maps an upstream property-type code onto the
// canonical set. Unknown codes fall back to the lowercased,
// space-normalized raw value so nothing silently collapses into "other".
func NormalizePropertyType(raw string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(raw))), " ")
	if normalized == "" {
		return ""
	}
	if canonical, ok := propertyTypes[normalized]; ok {
		return canonical
	}
	return normalized
}

// FromSearchResult normalizes the shallow search payload shape.
func FromSearchResult(raw *upstream.SearchResult) transport.Property {
	if raw == nil {
		return transport.Property{Source: SourcePropertyAPI}
	}

	p := transport.Property{
		Source:   SourcePropertyAPI,
		SourceID: raw.ID.String(),

		OwnerName:    raw.OwnerName,
		PropertyType: NormalizePropertyType(raw.PropertyType),

		Bedrooms:   raw.Bedrooms.Float64Ptr(),
		Bathrooms:  raw.Bathrooms.Float64Ptr(),
		SquareFeet: raw.SquareFeet.Float64Ptr(),
		LotSqft:    raw.LotSqft.Float64Ptr(),
		YearBuilt:  raw.YearBuilt.Float64Ptr(),

		EstimatedValue:  raw.EstimatedValue.Float64Ptr(),
		EstimatedEquity: raw.EstimatedEquity.Float64Ptr(),
		EquityPercent:   raw.EquityPercent.Float64Ptr(),
		LastSaleDate:    raw.LastSaleDate,
		LastSaleAmount:  raw.LastSaleAmount.Float64Ptr(),

		Flags: raw.DistressFlags(),
	}
	applyAddress(&p, raw.Address)

	metadata := map[string]any{}
	putIfSet(metadata, "documentType", raw.DocumentType)
	if v := raw.YearsOwned.Float64Ptr(); v != nil {
		metadata["yearsOwned"] = *v
	}
	if v := raw.TotalPropertiesOwned.Float64Ptr(); v != nil {
		metadata["totalPropertiesOwned"] = *v
	}
	if len(metadata) > 0 {
		p.Metadata = metadata
	}

	return p
}

// FromDetailResult normalizes the rich detail payload shape into the same
// target record. Nested sub-objects that have no first-class column land in
// the metadata bag.
func FromDetailResult(raw *upstream.DetailResult) transport.Property {
	if raw == nil {
		return transport.Property{Source: SourcePropertyAPI}
	}

	p := transport.Property{
		Source:   SourcePropertyAPI,
		SourceID: raw.ID.String(),

		EstimatedValue:  raw.EstimatedValue.Float64Ptr(),
		EstimatedEquity: raw.EstimatedEquity.Float64Ptr(),
		EquityPercent:   raw.EquityPercent.Float64Ptr(),

		Flags: raw.DistressFlags(),
	}

	if info := raw.PropertyInfo; info != nil {
		applyAddress(&p, info.Address)
		propertyType := info.PropertyType
		if propertyType == "" {
			propertyType = info.PropertyUse
		}
		p.PropertyType = NormalizePropertyType(propertyType)
		p.Bedrooms = info.Bedrooms.Float64Ptr()
		p.Bathrooms = info.Bathrooms.Float64Ptr()
		p.SquareFeet = info.SquareFeet.Float64Ptr()
		p.LotSqft = info.LotSqft.Float64Ptr()
		p.YearBuilt = info.YearBuilt.Float64Ptr()
	}
	if info := raw.OwnerInfo; info != nil {
		p.OwnerName = info.Owner1FullName
	}
	if sale := raw.LastSale; sale != nil {
		p.LastSaleDate = sale.SaleDate
		p.LastSaleAmount = sale.SaleAmount.Float64Ptr()
	}

	metadata := map[string]any{}
	if info := raw.OwnerInfo; info != nil {
		putIfSet(metadata, "owner2FullName", info.Owner2FullName)
		if info.MailAddress != nil {
			metadata["ownerMailAddress"] = info.MailAddress
		}
	}
	if info := raw.AuctionInfo; info != nil {
		putIfSet(metadata, "auctionDate", info.AuctionDate)
		if v := info.OpeningBid.Float64Ptr(); v != nil {
			metadata["auctionOpeningBid"] = *v
		}
	}
	if info := raw.ForeclosureInfo; info != nil {
		putIfSet(metadata, "foreclosureRecordingDate", info.RecordingDate)
		if v := info.DefaultAmount.Float64Ptr(); v != nil {
			metadata["foreclosureDefaultAmount"] = *v
		}
	}
	if info := raw.MortgageInfo; info != nil {
		putIfSet(metadata, "lenderName", info.LenderName)
		putIfSet(metadata, "lenderType", info.LenderType)
		if v := info.Amount.Float64Ptr(); v != nil {
			metadata["mortgageAmount"] = *v
		}
	}
	if len(metadata) > 0 {
		p.Metadata = metadata
	}

	return p
}

func applyAddress(p *transport.Property, addr *upstream.Address) {
	if addr == nil {
		return
	}
	p.Street = addr.Street
	p.City = addr.City
	p.State = addr.State
	p.Zip = addr.Zip
}

func putIfSet(metadata map[string]any, key, value string) {
	if value != "" {
		metadata[key] = value
	}
}
