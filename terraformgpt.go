// Package terraformgpt provides a CLI tool that catalogs Terraform provider
// resource documentation and answers questions about it. It ingests resource
// docs from the provider registry (or any provider docs site), stores
// resources and their attributes in a local database, and can ask an LLM for
// a natural-language explanation of a resource at a specific provider version.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, registry/, gemini/).
package terraformgpt
