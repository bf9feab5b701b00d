// SPDX-License-Identifier: Apache-2.0

// Package webconfig extracts deployment parameter candidates from an
// ASP.NET web.config.
//
// A Pipeline loads the document, runs one SectionExtractor per supported
// section (appSettings, applicationSettings, compilation, mailSettings,
// sessionState) and returns an ordered list of Settings. Each Setting
// carries an absolute XPath locator into the original document that
// Resolve can evaluate again later.
package webconfig
