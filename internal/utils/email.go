package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/wneessen/go-mail"
)

// SMTPMailer envia e-mails transacionais pela conta SMTP da loja.
type SMTPMailer struct{}

// SendOrderConfirmation envia o resumo do pedido para o cliente.
func (SMTPMailer) SendOrderConfirmation(order models.Order) error {
	subject := fmt.Sprintf("Pedido recebido ✨ #%s", order.ID.String()[:8])
	return sendHTML(order.CustomerEmail, subject, orderConfirmationHTML(order))
}

func sendHTML(to, subject, htmlBody string) error {
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "contato@usecompleta.com.br"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Enviando e-mail para", to)
	return client.DialAndSend(msg)
}

func orderConfirmationHTML(order models.Order) string {
	var items strings.Builder
	for _, item := range order.Items {
		variant := ""
		if item.Size != "" || item.Color != "" {
			variant = fmt.Sprintf(" (%s/%s)", item.Size, item.Color)
		}
		items.WriteString(fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border-bottom: 1px solid #eee;">%s%s</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">R$ %.2f</td>
			</tr>`, item.Name, variant, item.Quantity, item.Price*float64(item.Quantity)))
	}

	frete := fmt.Sprintf("R$ %.2f", order.Shipping.Price)
	if order.Shipping.Price == 0 {
		frete = "Grátis"
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #faf7f5; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 24px; border-radius: 10px;">
		<h2 style="color: #3d2b24;">Recebemos o seu pedido 💛</h2>
		<p>Olá, %s!</p>
		<p>Seu pedido <strong>#%s</strong> foi registrado e está aguardando a confirmação do pagamento.
		Assim que o pagamento for aprovado você recebe outro aviso por aqui.</p>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f5efe9; text-align: left;">
					<th style="padding: 8px;">Produto</th>
					<th style="padding: 8px; text-align: center;">Qtd</th>
					<th style="padding: 8px; text-align: right;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>

		<p style="text-align: right;">Frete (%s): %s<br>
		<strong>Total: R$ %.2f</strong></p>

		<p style="color: #8a7a70; font-size: 13px;">Qualquer dúvida é só responder este e-mail
		ou chamar a gente no WhatsApp.</p>
	</div>
</body>
</html>`,
		order.CustomerName, order.ID.String()[:8], items.String(),
		order.Shipping.Service, frete, order.Total)
}
