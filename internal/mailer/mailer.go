// server/internal/mailer/mailer.go
package mailer

import (
	"fmt"
	"time"

	"jeevan-api-server/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends the transactional HTML mails. Every send is best effort: when
// SMTP credentials are missing the mail is logged and dropped, and callers are
// expected to swallow errors so a mail outage never blocks the primary write.
type Mailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

func New(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// Enabled reports whether SMTP credentials are configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.User != "" && m.cfg.Password != ""
}

// Send delivers one HTML mail.
func (m *Mailer) Send(to, subject, html string) error {
	if !m.Enabled() {
		m.logger.Warn("SMTP credentials not configured, mail not sent",
			zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	from := m.cfg.From
	if from == "" {
		from = fmt.Sprintf("\"Jeevan Blood Donation\" <%s>", m.cfg.User)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return err
	}

	m.logger.Info("mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// SendOTP mails the registration verification code.
func (m *Mailer) SendOTP(to, otp string) error {
	html := fmt.Sprintf(`
    <h1>Email Verification</h1>
    <p>Your OTP for registration is: <strong>%s</strong></p>
    <p>This OTP is valid for 10 minutes.</p>
  `, otp)
	return m.Send(to, "Verify your email - Jeevan Blood Donation", html)
}

// SendAppointmentConfirmation mails the donor when a hospital confirms.
func (m *Mailer) SendAppointmentConfirmation(to, donorName string, date time.Time, bankName, address, mapLink string) error {
	html := fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
      <h2 style="color: #dc2626;">Appointment Confirmed</h2>
      <p>Dear %s,</p>
      <p>Your blood donation appointment has been confirmed.</p>

      <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <p><strong>Date:</strong> %s</p>
        <p><strong>Blood Bank:</strong> %s</p>
        <p><strong>Address:</strong> %s</p>
        <p><strong>Location:</strong> <a href="%s" target="_blank">View on Map</a></p>
      </div>

      <p>Please arrive 10 minutes early. Remember to stay hydrated and eat a light meal before donating.</p>

      <p>Thank you for saving lives!</p>
      <p>Team Jeevan</p>
    </div>
  `, donorName, date.Format("02 Jan 2006"), bankName, address, mapLink)
	return m.Send(to, "Appointment Confirmed - Jeevan Blood Donation", html)
}

// SendAppointmentRejection mails the donor when an appointment is cancelled or
// rejected.
func (m *Mailer) SendAppointmentRejection(to, donorName string, date time.Time, bankName string) error {
	html := fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
      <h2 style="color: #dc2626;">Appointment Update</h2>
      <p>Dear %s,</p>
      <p>We regret to inform you that your appointment at %s on %s could not go ahead.</p>
      <p>Please book a new slot whenever it suits you. Every donation counts.</p>
      <p>Team Jeevan</p>
    </div>
  `, donorName, bankName, date.Format("02 Jan 2006"))
	return m.Send(to, "Appointment Update - Jeevan Blood Donation", html)
}

// SendDonationAppreciation thanks a donor after a completed donation.
func (m *Mailer) SendDonationAppreciation(to, donorName, bloodGroup, bankName string, date time.Time, donationCount int) error {
	html := fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
      <h2 style="color: #dc2626;">Thank You for Donating! ❤️</h2>
      <p>Dear %s,</p>
      <p>Your %s donation at %s on %s was completed successfully.</p>
      <p>This was your donation number <strong>%d</strong>. A single donation can save up to 3 lives.</p>
      <p>Remember to rest, hydrate and eat iron-rich foods today.</p>
      <p>Team Jeevan</p>
    </div>
  `, donorName, bloodGroup, bankName, date.Format("02 Jan 2006"), donationCount)
	return m.Send(to, "Thank You for Your Donation - Jeevan Blood Donation", html)
}

// SendDisasterAlert mails one eligible donor about an active emergency.
func (m *Mailer) SendDisasterAlert(to, donorName, bloodGroup, title, description, location, baseURL string) error {
	subject := fmt.Sprintf("🚨 URGENT: %s", title)
	html := fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
      <div style="background: linear-gradient(135deg, #dc2626, #b91c1c); padding: 20px; text-align: center;">
        <h1 style="color: white; margin: 0;">🚨 Emergency Blood Alert</h1>
      </div>
      <div style="padding: 20px; background: #fff;">
        <h2 style="color: #dc2626;">%s</h2>
        <p style="color: #374151; font-size: 16px;">%s</p>
        <p style="color: #6b7280;"><strong>Location:</strong> %s</p>
        <p style="color: #6b7280;"><strong>Your Blood Type (%s) is urgently needed!</strong></p>
        <div style="text-align: center; margin: 30px 0;">
          <a href="%s/donate"
             style="background: #dc2626; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; font-weight: bold;">
            Respond to Emergency
          </a>
        </div>
        <p style="color: #9ca3af; font-size: 12px;">Thank you for being a lifesaver, %s!</p>
      </div>
    </div>
  `, title, description, location, bloodGroup, baseURL, donorName)
	return m.Send(to, subject, html)
}

// SendVolunteerDecision mails a volunteer applicant the admin's decision.
func (m *Mailer) SendVolunteerDecision(to, name string, approved bool) error {
	var subject, html string
	if approved {
		subject = "Volunteer Application Approved - Jeevan Blood Donation"
		html = fmt.Sprintf(`
      <h2>Congratulations %s!</h2>
      <p>We are pleased to inform you that your application to join Jeevan Blood Donation as a volunteer has been <strong>APPROVED</strong>.</p>
      <p>We are excited to have you on board. Our team will contact you shortly with further details.</p>
      <p>Thank you for your commitment to saving lives!</p>
      <br/>
      <p>Best Regards,</p>
      <p>The Jeevan Team</p>
    `, name)
	} else {
		subject = "Update on your Volunteer Application - Jeevan Blood Donation"
		html = fmt.Sprintf(`
      <h2>Hello %s,</h2>
      <p>Thank you for your interest in volunteering with Jeevan Blood Donation.</p>
      <p>After careful review, we regret to inform you that we are unable to move forward with your application at this time.</p>
      <p>We appreciate your willingness to help and encourage you to apply again in the future.</p>
      <br/>
      <p>Best Regards,</p>
      <p>The Jeevan Team</p>
    `, name)
	}
	return m.Send(to, subject, html)
}

// SendVolunteerApplicationNotice mails the admin about a new application.
func (m *Mailer) SendVolunteerApplicationNotice(adminEmail, name, email, phone, address, reason string) error {
	html := fmt.Sprintf(`
    <h2>New Volunteer Application</h2>
    <p><strong>Name:</strong> %s</p>
    <p><strong>Email:</strong> %s</p>
    <p><strong>Phone:</strong> %s</p>
    <p><strong>Address:</strong> %s</p>
    <p><strong>Reason for Joining:</strong></p>
    <p>%s</p>
  `, name, email, phone, address, reason)
	return m.Send(adminEmail, fmt.Sprintf("New Volunteer Application: %s", name), html)
}

// SendFeedbackNotice mails the admin a summary of newly submitted feedback.
func (m *Mailer) SendFeedbackNotice(adminEmail, donorName, donorEmail, bankName string, rating int, experience string, comments string) error {
	html := fmt.Sprintf(`
    <h2>New Donation Feedback</h2>
    <p><strong>Donor:</strong> %s (%s)</p>
    <p><strong>Blood Bank:</strong> %s</p>
    <p><strong>Rating:</strong> %d/5</p>
    <p><strong>Experience:</strong> %s</p>
    <p><strong>Comments:</strong> %s</p>
  `, donorName, donorEmail, bankName, rating, experience, comments)
	return m.Send(adminEmail, "New Feedback Received - Jeevan Blood Donation", html)
}
