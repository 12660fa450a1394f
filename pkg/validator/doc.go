// Package validator provides composable, rule-based validation for request
// inputs. Rules are plain value checks combined with Apply, which collects
// every failure into a single ValidationErrors value so handlers can report
// all problems in one response.
//
// Usage:
//
//	if err := validator.Apply(
//		validator.ValidEmail("email", in.Email),
//		validator.MinLength("password", in.Password, 8),
//	); err != nil {
//		return err // err is validator.ValidationErrors
//	}
package validator
