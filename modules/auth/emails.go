package auth

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/listora/identity/pkg/email"
)

// Outbound email builders. Bodies are small inline HTML; anything fancier
// belongs in provider-side templates. Links always point at the front end,
// which owns the pages that terminate each flow.

func (s *Service) verificationEmail(to, name, token string) email.Message {
	link := s.frontendLink("/verify-email", "token", token)
	return email.Message{
		To:      to,
		Subject: "Verify your email address",
		Tag:     "email-verification",
		BodyHTML: fmt.Sprintf(
			`<p>Hi %s,</p><p>Confirm your email address to activate your account:</p><p><a href="%s">Verify email</a></p><p>If you did not sign up, you can ignore this message.</p>`,
			html.EscapeString(name), link,
		),
	}
}

func (s *Service) otpEmail(to, code string) email.Message {
	return email.Message{
		To:      to,
		Subject: "Your login code",
		Tag:     "otp-login",
		BodyHTML: fmt.Sprintf(
			`<p>Your one-time login code is:</p><p style="font-size:24px;letter-spacing:4px"><strong>%s</strong></p><p>It expires in %d minutes.</p>`,
			html.EscapeString(code), int(s.otpTTL.Minutes()),
		),
	}
}

func (s *Service) resetEmail(to, name, token string) email.Message {
	link := s.frontendLink("/reset-password", "token", token)
	return email.Message{
		To:      to,
		Subject: "Reset your password",
		Tag:     "password-reset",
		BodyHTML: fmt.Sprintf(
			`<p>Hi %s,</p><p>We received a request to reset your password:</p><p><a href="%s">Choose a new password</a></p><p>The link expires in one hour. If you did not request this, you can ignore this message.</p>`,
			html.EscapeString(name), link,
		),
	}
}

func (s *Service) inviteEmail(to, name, token string) email.Message {
	link := s.frontendLink("/reset-password", "token", token)
	return email.Message{
		To:      to,
		Subject: "You have been invited as an administrator",
		Tag:     "admin-invite",
		BodyHTML: fmt.Sprintf(
			`<p>Hi %s,</p><p>An administrator account has been created for you. Set a password to get started:</p><p><a href="%s">Set your password</a></p><p>The link expires in seven days.</p>`,
			html.EscapeString(name), link,
		),
	}
}

func (s *Service) frontendLink(path, param, value string) string {
	base := strings.TrimRight(s.frontendBaseURL, "/")
	return fmt.Sprintf("%s%s?%s=%s", base, path, param, url.QueryEscape(value))
}
