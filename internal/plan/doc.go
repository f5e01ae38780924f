// Package plan builds the generation plan: one Entity context and one
// Collection context per color model × range variant combination that the
// model table's policy allows.
//
// Build pipeline:
//  1. Select models (all, the tiny subset, or an explicit filter)
//  2. For each model, walk every declared range variant and keep the ones
//     the policy allows
//  3. Derive class names, bounds and channel properties into contexts
//  4. Check the plan: class names unique, every collection's sample class
//     present among the entities
package plan
