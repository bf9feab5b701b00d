// SPDX-License-Identifier: Apache-2.0

package webconfig

import (
	"log/slog"
	"strings"
)

// SectionExtractor derives settings from one kind of configuration section.
// Extract appends to acc and returns it; acc holds everything emitted
// earlier in the same pass.
type SectionExtractor interface {
	Name() string
	Enabled(opts Options) bool
	Extract(root *Element, opts Options, acc []Setting) []Setting
}

// AppSettingsExtractor reads <add key value> entries of every appSettings
// section, at any depth.
type AppSettingsExtractor struct{}

// NewAppSettingsExtractor creates a new AppSettingsExtractor.
func NewAppSettingsExtractor() *AppSettingsExtractor {
	return &AppSettingsExtractor{}
}

func (x *AppSettingsExtractor) Name() string {
	return "appSettings"
}

func (x *AppSettingsExtractor) Enabled(opts Options) bool {
	return opts.IncludeAppSettings
}

func (x *AppSettingsExtractor) Extract(root *Element, opts Options, acc []Setting) []Setting {
	for _, section := range root.Descendants("appSettings") {
		sectionPath := section.Path()
		for _, entry := range section.Children {
			if entry.Name != "add" {
				continue
			}
			key, ok := entry.Attr("key")
			if !ok {
				continue
			}
			acc = append(acc, Setting{
				Name:    key,
				Locator: attributeOf(selectBy(sectionPath, "add", "key", key), "value"),
				Value: opts.valueFor(key, func() string {
					v, _ := entry.Attr("value")
					return v
				}),
			})
		}
	}
	return acc
}

// ApplicationSettingsExtractor reads string-serialized members of every
// settings group under applicationSettings.
type ApplicationSettingsExtractor struct{}

// NewApplicationSettingsExtractor creates a new ApplicationSettingsExtractor.
func NewApplicationSettingsExtractor() *ApplicationSettingsExtractor {
	return &ApplicationSettingsExtractor{}
}

func (x *ApplicationSettingsExtractor) Name() string {
	return "applicationSettings"
}

func (x *ApplicationSettingsExtractor) Enabled(opts Options) bool {
	return opts.IncludeApplicationSettings
}

func (x *ApplicationSettingsExtractor) Extract(root *Element, opts Options, acc []Setting) []Setting {
	for _, section := range root.Descendants("applicationSettings") {
		for _, group := range section.Children {
			groupPath := group.Path()
			for _, member := range group.Children {
				if serializeAs, _ := member.Attr("serializeAs"); serializeAs != "String" {
					continue
				}
				name, ok := member.Attr("name")
				if !ok {
					continue
				}
				settingName := disambiguate(acc, group.Name, name)
				if settingName != name {
					opts.logger().Debug("renamed colliding application setting",
						slog.String("setting", name),
						slog.String("renamed", settingName))
				}
				acc = append(acc, Setting{
					Name:    settingName,
					Locator: selectBy(groupPath, member.Name, "name", name) + "/value/text()",
					Value: opts.valueFor(settingName, func() string {
						if v := member.Child("value"); v != nil {
							return v.Text
						}
						return ""
					}),
				})
			}
		}
	}
	return acc
}

// disambiguate qualifies name with its group when acc already holds it.
// Only one level of qualification is applied.
func disambiguate(acc []Setting, group, name string) string {
	for _, s := range acc {
		if s.Name == name {
			return group + "." + name
		}
	}
	return name
}

// attributeSetting maps one attribute at a fixed path below <configuration>.
type attributeSetting struct {
	name string
	path []string
	attr string
}

// FixedSectionExtractor emits settings for attributes at fixed paths when
// they are present and non-empty.
type FixedSectionExtractor struct {
	name     string
	enabled  func(Options) bool
	settings []attributeSetting
}

// NewCompilationDebugExtractor creates an extractor for system.web/compilation debug.
func NewCompilationDebugExtractor() *FixedSectionExtractor {
	return &FixedSectionExtractor{
		name:    "compilation",
		enabled: func(o Options) bool { return o.IncludeCompilationDebug },
		settings: []attributeSetting{
			{name: "Compilation.Debug", path: []string{"system.web", "compilation"}, attr: "debug"},
		},
	}
}

// NewMailSettingsExtractor creates an extractor for the SMTP host and delivery method.
func NewMailSettingsExtractor() *FixedSectionExtractor {
	return &FixedSectionExtractor{
		name:    "mailSettings",
		enabled: func(o Options) bool { return o.IncludeMailSettings },
		settings: []attributeSetting{
			{name: "Smtp.NetworkHost", path: []string{"system.net", "mailSettings", "smtp", "network"}, attr: "host"},
			{name: "Smtp.DeliveryMethod", path: []string{"system.net", "mailSettings", "smtp"}, attr: "deliveryMethod"},
		},
	}
}

// NewSessionStateExtractor creates an extractor for the session state mode and SQL connection string.
func NewSessionStateExtractor() *FixedSectionExtractor {
	return &FixedSectionExtractor{
		name:    "sessionState",
		enabled: func(o Options) bool { return o.IncludeSessionStateSettings },
		settings: []attributeSetting{
			{name: "SessionState.Mode", path: []string{"system.web", "sessionState"}, attr: "mode"},
			{name: "SessionState.ConnectionString", path: []string{"system.web", "sessionState"}, attr: "sqlConnectionString"},
		},
	}
}

func (x *FixedSectionExtractor) Name() string {
	return x.name
}

func (x *FixedSectionExtractor) Enabled(opts Options) bool {
	return x.enabled(opts)
}

func (x *FixedSectionExtractor) Extract(root *Element, opts Options, acc []Setting) []Setting {
	for _, s := range x.settings {
		value, ok := firstAttr(root.FindAll(s.path...), s.attr)
		if !ok || value == "" {
			continue
		}
		acc = append(acc, Setting{
			Name:    s.name,
			Locator: attributeOf("/"+root.Name+"/"+strings.Join(s.path, "/"), s.attr),
			Value:   opts.valueFor(s.name, func() string { return value }),
		})
	}
	return acc
}

// firstAttr returns the attribute of the first element carrying it, which is
// the node the fixed-path locator selects.
func firstAttr(elements []*Element, attr string) (string, bool) {
	for _, el := range elements {
		if v, ok := el.Attr(attr); ok {
			return v, true
		}
	}
	return "", false
}
