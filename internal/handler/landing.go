package handler

// Built-in landing pages shown when no redirect URL is configured.

const approvedLanding = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>Payment Approved</title>
	<style>
		body {
			font-family: Arial, sans-serif;
			text-align: center;
			margin-top: 80px;
		}
	</style>
</head>
<body>
	<h2>Payment approved</h2>
	<p>Your payment has been approved and is being processed.</p>
	<p>You may close this page.</p>
</body>
</html>
`

const cancelledLanding = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>Payment Cancelled</title>
	<style>
		body {
			font-family: Arial, sans-serif;
			text-align: center;
			margin-top: 80px;
		}
	</style>
</head>
<body>
	<h2>Payment cancelled</h2>
	<p>Your payment was cancelled and you have not been charged.</p>
	<p>You may close this page and try again.</p>
</body>
</html>
`
