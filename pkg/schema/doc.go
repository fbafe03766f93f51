// Package schema models the configuration schema consumed by row
// summaries: services expose an ordered list of entity field descriptors
// that decide which record fields are shown and under which label.
//
// The GlobalConfig type follows the add-on globalConfig layout where input
// services live under pages.inputs.services and configuration tabs under
// pages.configuration.tabs. Other schema sources only need to satisfy the
// Accessor interface.
package schema
