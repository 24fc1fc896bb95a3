package search

import (
	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/repository/specification"
)

// FilterSpecs turns search filters into specifications that the repository
// folds into one conjunctive WHERE clause. NotArchived comes first unless the
// caller opts into archived documents.
func FilterSpecs(filters dto.SearchFilters) []specification.Specification {
	var specs []specification.Specification

	if !filters.IncludeArchived {
		specs = append(specs, specification.NotArchived{})
	}
	if filters.Type != "" {
		specs = append(specs, specification.ByMetadataValue{Key: "type", Value: filters.Type})
	}
	if filters.Jurisdiction != "" {
		specs = append(specs, specification.ByMetadataValue{Key: "jurisdiction", Value: filters.Jurisdiction})
	}
	if filters.PropertyType != "" {
		specs = append(specs, specification.ByMetadataValue{Key: "propertyType", Value: filters.PropertyType})
	}
	if filters.CreatedFrom != nil {
		specs = append(specs, specification.CreatedFrom{From: *filters.CreatedFrom})
	}
	if filters.CreatedUntil != nil {
		specs = append(specs, specification.CreatedUntil{Until: *filters.CreatedUntil})
	}

	return specs
}
