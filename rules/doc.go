// Package rules provides a rule-based validator satisfying the form
// package's Validator contract, with YAML-loadable rulesets.
//
// Rules target dot paths; array elements use `[]` notation, so
// "orderItems[].name" covers the name field of every order item.
//
// # Schema Overview
//
// A ruleset file has the following structure:
//
//	version: "1"
//	fields:
//	  - path: customerName
//	    rules:
//	      - required: true
//	        message: Customer name is required
//	      - minLength: 2
//	  - path: orderItems[].name
//	    rules:
//	      - required: true
//	  - path: orderItems[].price
//	    rules:
//	      - min: 0
//	  - path: confirmEmail
//	    rules:
//	      - equals: email
//
// Each rule entry may combine several checks; a custom message replaces
// the default message of every check in that entry.
//
// The `equals` check compares against another field and feeds
// DependentFields: changing the referenced field re-validates the fields
// that compare against it. Inside arrays the comparison stays within the
// same element ("items[].min" against "items[].max").
//
// Validation is pure: ValidateField and Validate only compute error lists.
// The embedded form.ErrorStore holds the cached error state the form
// controller pushes results into.
package rules
